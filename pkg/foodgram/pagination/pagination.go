package pagination

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Params holds the parsed page/limit query parameters.
type Params struct {
	Page  int
	Limit int
}

// Parse reads page and limit from the query string, clamping limit to
// maxLimit and falling back to defaultLimit.
func Parse(c *gin.Context, defaultLimit, maxLimit int) Params {
	p := Params{Page: 1, Limit: defaultLimit}

	if v := c.Query("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			p.Page = parsed
		}
	}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			p.Limit = parsed
			if maxLimit > 0 && p.Limit > maxLimit {
				p.Limit = maxLimit
			}
		}
	}

	return p
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the paginated response envelope.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewPage builds the envelope, deriving next/previous URLs from the
// current request.
func NewPage(c *gin.Context, p Params, count int64, results interface{}) Page {
	page := Page{Count: count, Results: results}

	lastPage := int((count + int64(p.Limit) - 1) / int64(p.Limit))
	if p.Page < lastPage {
		u := pageURL(c.Request.URL, p.Page+1)
		page.Next = &u
	}
	if p.Page > 1 {
		u := pageURL(c.Request.URL, p.Page-1)
		page.Previous = &u
	}

	return page
}

func pageURL(base *url.URL, page int) string {
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// Package shortlinks assigns persistent short codes to recipes and resolves
// them back to the canonical recipe URL.
package shortlinks

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/nmakarova/foodgram/pkg/foodgram/models"
	"gorm.io/gorm"
)

const maxAttempts = 10

// ErrCodeSpaceExhausted means no unique code could be allocated after
// repeated attempts; only realistic with a tiny alphabet/length.
var ErrCodeSpaceExhausted = errors.New("could not allocate a unique short code")

// generateRandomCode creates a random code of given length
func generateRandomCode(length int, alphabet string) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

// EnsureCode returns the recipe's short code, creating one on first request.
// Creation runs in a transaction; code collisions (and a concurrent request
// creating the same recipe's link) surface as gorm.ErrDuplicatedKey and are
// retried rather than assumed away.
func EnsureCode(db *gorm.DB, recipeID uint, alphabet string, length int) (string, error) {
	var link models.ShortLink
	if err := db.Where("recipe_id = ?", recipeID).First(&link).Error; err == nil {
		return link.Code, nil
	}

	for attempts := 0; attempts < maxAttempts; attempts++ {
		code := generateRandomCode(length, alphabet)

		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&models.ShortLink{RecipeID: recipeID, Code: code}).Error
		})
		if err == nil {
			return code, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Either the code collided or a concurrent request already
			// assigned this recipe a link. Reuse the latter if so.
			if e := db.Where("recipe_id = ?", recipeID).First(&link).Error; e == nil {
				return link.Code, nil
			}
			continue
		}
		return "", err
	}

	return "", fmt.Errorf("%w after %d attempts", ErrCodeSpaceExhausted, maxAttempts)
}

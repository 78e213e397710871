// Package shopping aggregates a user's shopping cart into a consolidated
// ingredient list and renders it as plain text or PDF.
package shopping

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"
)

// Item is one aggregated line: an ingredient and the summed amount across
// every recipe in the cart.
type Item struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}

// Aggregate collects every ingredient row reachable through the user's cart,
// grouped by (name, unit) and summed. Ordered by name so output is stable.
func Aggregate(db *gorm.DB, userID uint) ([]Item, error) {
	var items []Item
	err := db.Table("shopping_carts").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_carts.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RenderText renders the list as a plain-text attachment body.
func RenderText(items []Item) []byte {
	var buf bytes.Buffer
	buf.WriteString("Shopping list\n\n")
	for _, item := range items {
		fmt.Fprintf(&buf, "- %s (%s): %d\n", item.Name, item.MeasurementUnit, item.Amount)
	}
	return buf.Bytes()
}

// RenderPDF renders the list as a single-column PDF document.
func RenderPDF(items []Item) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Shopping list")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	for _, item := range items {
		line := fmt.Sprintf("%s (%s): %d", item.Name, item.MeasurementUnit, item.Amount)
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

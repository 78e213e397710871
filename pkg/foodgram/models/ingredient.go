package models

import "time"

// Ingredient is catalog reference data. The same name may appear with
// different measurement units, so uniqueness is on the (name, unit) pair.
type Ingredient struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
	Name            string    `gorm:"size:128;not null;uniqueIndex:idx_ingredient_name_unit;index" json:"name"`
	MeasurementUnit string    `gorm:"size:40;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

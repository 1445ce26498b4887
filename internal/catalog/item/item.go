// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

/*
Package item implements the consumer-facing product catalog.

Like the athlete API, these endpoints front the mobile app and carry no
dashboard permission gate; consumer authentication terminates upstream.
*/
package item

import "time"

// Item is one product in the catalog. Price is stored in cents to avoid
// floating point drift.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Categories lists the recognized catalog categories.
var Categories = []string{"electronics", "clothing", "books", "home", "sports"}

// Field identifiers for validation errors.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
)

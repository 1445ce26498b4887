// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package item

import "context"

// Filter narrows a catalog listing.
type Filter struct {
	Category string
	InStock  *bool
	Offset   int
	Limit    int
}

// Repository defines the persistence operations for catalog items.
type Repository interface {
	FindByID(context context.Context, id int64) (*Item, error)
	List(context context.Context, filter Filter) ([]*Item, int, error)
	Create(context context.Context, item *Item) error
	Update(context context.Context, item *Item) error
	Delete(context context.Context, id int64) error
}

// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package item

import "context"

// Service implements catalog use cases on top of a Repository.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the data required to add a catalog item.
type CreateInput struct {
	Name        string
	Description *string
	Price       int64
	Category    string
	InStock     bool
}

// Create adds a new item to the catalog.
func (service *Service) Create(context context.Context, input CreateInput) (*Item, error) {
	item := &Item{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		InStock:     input.InStock,
	}

	if err := service.repository.Create(context, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Get returns one item by ID.
func (service *Service) Get(context context.Context, id int64) (*Item, error) {
	return service.repository.FindByID(context, id)
}

// List returns a filtered page of items plus the total matching count.
func (service *Service) List(context context.Context, filter Filter) ([]*Item, int, error) {
	return service.repository.List(context, filter)
}

// UpdateInput holds optional changes to an item.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *int64
	Category    *string
	InStock     *bool
}

// Update applies partial changes to an item.
func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Item, error) {
	item, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.InStock != nil {
		item.InStock = *input.InStock
	}

	if err := service.repository.Update(context, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes an item from the catalog.
func (service *Service) Delete(context context.Context, id int64) error {
	return service.repository.Delete(context, id)
}

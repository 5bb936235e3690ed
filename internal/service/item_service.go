package service

import (
	"context"
	"errors"

	"soleledger/internal/models"
	"soleledger/internal/repository"
)

// ItemService owns the canonical stock records and the status rule.
// The sales repo is only consulted to enforce the deletion policy.
type ItemService struct {
	items repository.ItemRepository
	sales repository.SaleRepository
}

func NewItemService(items repository.ItemRepository, sales repository.SaleRepository) *ItemService {
	return &ItemService{items: items, sales: sales}
}

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
)

// ItemInput carries the caller-editable fields of an item.
type ItemInput struct {
	Name         string
	ShoeType     string
	BasePrice    float64
	SellingPrice float64
	Quantity     int
	Supplier     string
	Description  string
	ImageURL     string
}

func (in ItemInput) validate() error {
	if in.Name == "" || in.BasePrice < 0 || in.SellingPrice < 0 || in.Quantity < 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *ItemService) Create(ctx context.Context, userID uint, in ItemInput) (*models.Item, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item := models.Item{
		Name:         in.Name,
		ShoeType:     in.ShoeType,
		BasePrice:    in.BasePrice,
		SellingPrice: in.SellingPrice,
		Quantity:     in.Quantity,
		Supplier:     in.Supplier,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		Status:       models.DeriveStatus(in.Quantity),
		AddedByID:    userID,
	}
	if err := s.items.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ItemService) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.items.GetByID(ctx, id)
}

// Update is the explicit edit path. Quantity edits here also re-derive
// the status, same as the implicit sale mutations.
func (s *ItemService) Update(ctx context.Context, id uint, in ItemInput) (*models.Item, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = in.Name
	item.ShoeType = in.ShoeType
	item.BasePrice = in.BasePrice
	item.SellingPrice = in.SellingPrice
	item.Quantity = in.Quantity
	item.Supplier = in.Supplier
	item.Description = in.Description
	if in.ImageURL != "" {
		item.ImageURL = in.ImageURL
	}
	item.Status = models.DeriveStatus(in.Quantity)
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete refuses to remove an item that past sales still reference, so
// sale records never end up with a dangling item id.
func (s *ItemService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	n, err := s.sales.CountByItem(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrInvalidState
	}
	return s.items.Delete(ctx, id)
}

func (s *ItemService) List(ctx context.Context, f repository.ItemFilter) ([]models.Item, error) {
	return s.items.List(ctx, f)
}

// AdjustQuantity exposes the atomic delta primitive for manual stock
// corrections (restock deliveries, damaged pairs).
func (s *ItemService) AdjustQuantity(ctx context.Context, id uint, delta int) (*models.Item, error) {
	if id == 0 || delta == 0 {
		return nil, ErrInvalidInput
	}
	return s.items.AdjustQuantity(ctx, id, delta)
}

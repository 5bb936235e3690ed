package service

import (
	"context"
	"time"

	"soleledger/internal/models"
	"soleledger/internal/repository"
)

// SaleService validates and records sales, keeping the item ledger
// consistent. Store sales run the conditional stock decrement and the
// sale insert inside one transaction; reversal restores stock the same
// way. Out-of-store sales never touch the ledger.
type SaleService struct {
	items repository.ItemRepository
	sales repository.SaleRepository
	tx    repository.TxManager
}

func NewSaleService(items repository.ItemRepository, sales repository.SaleRepository, tx repository.TxManager) *SaleService {
	return &SaleService{items: items, sales: sales, tx: tx}
}

// RecordSaleInput is what the caller supplies for a new sale. ItemID is
// required for store sales; BasePrice and ItemName are required for
// out-of-store sales.
type RecordSaleInput struct {
	ItemID        *uint
	ItemName      string
	Quantity      int
	SellingPrice  float64
	BasePrice     *float64
	SaleType      models.SaleType
	ClientPhone   string
	ClientAddress string
	ClientNotes   string
	SaleDate      *time.Time
}

func (in RecordSaleInput) validate() error {
	if in.Quantity < 1 || in.SellingPrice < 0 {
		return ErrInvalidInput
	}
	switch in.SaleType {
	case models.SaleTypeStore:
		if in.ItemID == nil || *in.ItemID == 0 {
			return ErrInvalidInput
		}
	case models.SaleTypeOutOfStore:
		if in.ItemName == "" || in.BasePrice == nil || *in.BasePrice < 0 {
			return ErrInvalidInput
		}
	default:
		return ErrInvalidInput
	}
	return nil
}

func (s *SaleService) Record(ctx context.Context, userID uint, in RecordSaleInput) (*models.Sale, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	saleDate := time.Now().UTC()
	if in.SaleDate != nil {
		saleDate = *in.SaleDate
	}

	sale := models.Sale{
		Quantity:      in.Quantity,
		SellingPrice:  in.SellingPrice,
		SaleType:      in.SaleType,
		ClientPhone:   in.ClientPhone,
		ClientAddress: in.ClientAddress,
		ClientNotes:   in.ClientNotes,
		SoldByID:      userID,
		SaleDate:      saleDate,
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if in.SaleType == models.SaleTypeStore {
			// one conditional write: fails with ErrNotFound or
			// ErrInsufficientStock without touching anything
			item, err := s.items.AdjustQuantity(ctx, *in.ItemID, -in.Quantity)
			if err != nil {
				return err
			}
			sale.ItemID = in.ItemID
			sale.ItemName = item.Name
			sale.BasePrice = item.BasePrice
		} else {
			sale.ItemName = in.ItemName
			sale.BasePrice = *in.BasePrice
		}
		sale.TotalAmount, sale.Profit = models.SaleTotals(sale.Quantity, sale.SellingPrice, sale.BasePrice)
		return s.sales.Create(ctx, &sale)
	})
	if err != nil {
		return nil, err
	}
	// re-read so the item reference comes back resolved for display
	return s.sales.GetByID(ctx, sale.ID)
}

func (s *SaleService) GetByID(ctx context.Context, id uint) (*models.Sale, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.sales.GetByID(ctx, id)
}

func (s *SaleService) List(ctx context.Context, f repository.SaleFilter) ([]models.Sale, error) {
	return s.sales.List(ctx, f)
}

// UpdateSaleInput carries the correctable fields of an existing sale.
// Nil means "leave as is".
type UpdateSaleInput struct {
	SellingPrice  *float64
	ClientPhone   *string
	ClientAddress *string
	ClientNotes   *string
}

// Update corrects the transacted price or client details. Totals are
// recomputed from the base price snapshotted at sale time; the item's
// quantity is never touched - a price edit is not a stock event.
func (s *SaleService) Update(ctx context.Context, id uint, in UpdateSaleInput) (*models.Sale, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	if in.SellingPrice != nil && *in.SellingPrice < 0 {
		return nil, ErrInvalidInput
	}
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SellingPrice != nil {
		sale.SellingPrice = *in.SellingPrice
		sale.TotalAmount, sale.Profit = models.SaleTotals(sale.Quantity, sale.SellingPrice, sale.BasePrice)
	}
	if in.ClientPhone != nil {
		sale.ClientPhone = *in.ClientPhone
	}
	if in.ClientAddress != nil {
		sale.ClientAddress = *in.ClientAddress
	}
	if in.ClientNotes != nil {
		sale.ClientNotes = *in.ClientNotes
	}
	if err := s.sales.Update(ctx, sale); err != nil {
		return nil, err
	}
	return s.sales.GetByID(ctx, id)
}

// Delete undoes a sale. Stock is restored before the record is removed,
// and both run in one transaction, so a crash can never leave a deleted
// sale with unreturned stock.
func (s *SaleService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.sales.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale.ItemID != nil {
			if _, err := s.items.AdjustQuantity(ctx, *sale.ItemID, sale.Quantity); err != nil {
				return err
			}
		}
		return s.sales.Delete(ctx, id)
	})
}

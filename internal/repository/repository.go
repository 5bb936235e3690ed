package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"soleledger/internal/models"
)

// ErrNotFound is returned when the referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrInsufficientStock is returned by AdjustQuantity when the delta would
// drive an item's quantity negative. It is detected by the store itself so
// the check and the write are one atomic step.
var ErrInsufficientStock = errors.New("insufficient stock")

// ItemFilter narrows item listings
type ItemFilter struct {
	AddedByID     *uint
	Status        *models.StockStatus
	ShoeType      string
	NameSubstring string
	From          *time.Time
	To            *time.Time
}

// SaleFilter narrows sale listings
type SaleFilter struct {
	SoldByID *uint
	SaleType *models.SaleType
	ItemID   *uint
	From     *time.Time
	To       *time.Time
}

// TaskFilter narrows task listings
type TaskFilter struct {
	CreatedByID *uint
	From        *time.Time
	To          *time.Time
}

// ReminderFilter narrows reminder listings
type ReminderFilter struct {
	CreatedByID *uint
	Unsent      bool
	DueBefore   *time.Time
}

// ItemRepository owns the stock records. AdjustQuantity is the only way
// quantity changes outside a full item update: one conditional write that
// applies the delta iff the result stays >= 0 and re-derives status.
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f ItemFilter) ([]models.Item, error)
	AdjustQuantity(ctx context.Context, id uint, delta int) (*models.Item, error)
}

// SaleRepository persists sale records
type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	GetByID(ctx context.Context, id uint) (*models.Sale, error)
	Update(ctx context.Context, sale *models.Sale) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f SaleFilter) ([]models.Sale, error)
	CountByItem(ctx context.Context, itemID uint) (int64, error)
}

// TaskRepository persists costed field activities
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f TaskFilter) ([]models.Task, error)
}

// ReminderRepository persists reminders and the sent flag
type ReminderRepository interface {
	Create(ctx context.Context, r *models.Reminder) error
	GetByID(ctx context.Context, id uint) (*models.Reminder, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f ReminderFilter) ([]models.Reminder, error)
	MarkSent(ctx context.Context, ids []uint, at time.Time) error
}

// UserRepository persists accounts
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// TxManager runs fn inside a single transaction boundary so the sale
// insert and the stock adjustment commit or roll back together.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

package service

import (
	"context"
	"time"

	"soleledger/internal/models"
	"soleledger/internal/repository"
)

// TaskService records costed field activities. Tasks live entirely apart
// from the item ledger; the only failure mode is bad input.
type TaskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// TaskInput carries the caller-editable fields of a task.
type TaskInput struct {
	ShoeType      string
	SaleLocation  models.SaleType
	BasePrice     float64
	ProfitGained  float64
	TaxiCost      float64
	OtherCosts    float64
	Supplier      string
	ClientDetails string
	Notes         string
	TaskDate      *time.Time
}

func (in TaskInput) validate() error {
	if in.BasePrice < 0 || in.ProfitGained < 0 || in.TaxiCost < 0 || in.OtherCosts < 0 {
		return ErrInvalidInput
	}
	if in.SaleLocation != models.SaleTypeStore && in.SaleLocation != models.SaleTypeOutOfStore {
		return ErrInvalidInput
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, userID uint, in TaskInput) (*models.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	taskDate := time.Now().UTC()
	if in.TaskDate != nil {
		taskDate = *in.TaskDate
	}
	task := models.Task{
		ShoeType:      in.ShoeType,
		SaleLocation:  in.SaleLocation,
		BasePrice:     in.BasePrice,
		ProfitGained:  in.ProfitGained,
		TaxiCost:      in.TaxiCost,
		OtherCosts:    in.OtherCosts,
		Supplier:      in.Supplier,
		ClientDetails: in.ClientDetails,
		Notes:         in.Notes,
		TaskDate:      taskDate,
		CreatedByID:   userID,
	}
	task.TotalCost, task.NetProfit = models.TaskTotals(task.BasePrice, task.TaxiCost, task.OtherCosts, task.ProfitGained)
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.tasks.GetByID(ctx, id)
}

// Update rewrites the task's inputs and recomputes both derived totals.
func (s *TaskService) Update(ctx context.Context, id uint, in TaskInput) (*models.Task, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.ShoeType = in.ShoeType
	task.SaleLocation = in.SaleLocation
	task.BasePrice = in.BasePrice
	task.ProfitGained = in.ProfitGained
	task.TaxiCost = in.TaxiCost
	task.OtherCosts = in.OtherCosts
	task.Supplier = in.Supplier
	task.ClientDetails = in.ClientDetails
	task.Notes = in.Notes
	if in.TaskDate != nil {
		task.TaskDate = *in.TaskDate
	}
	task.TotalCost, task.NetProfit = models.TaskTotals(task.BasePrice, task.TaxiCost, task.OtherCosts, task.ProfitGained)
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	return s.tasks.Delete(ctx, id)
}

func (s *TaskService) List(ctx context.Context, f repository.TaskFilter) ([]models.Task, error) {
	return s.tasks.List(ctx, f)
}

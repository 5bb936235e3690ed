package service

import (
	"context"
	"sort"
	"time"

	"soleledger/internal/models"
	"soleledger/internal/repository"
)

// Period selects the dashboard's time window.
type Period string

const (
	PeriodToday  Period = "today"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodCustom Period = "custom"
	PeriodAll    Period = "all"
)

// monthlyBucketCutoff is the window length past which the trend switches
// from daily to monthly buckets.
const monthlyBucketCutoff = 92 * 24 * time.Hour

// TypeBreakdown is one slice of the sales split.
type TypeBreakdown struct {
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// LocationBreakdown is one slice of the tasks split.
type LocationBreakdown struct {
	Count  int64   `json:"count"`
	Profit float64 `json:"profit"`
	Cost   float64 `json:"cost"`
}

// SalesSummary rolls up the sales inside the window.
type SalesSummary struct {
	Count   int64                            `json:"count"`
	Revenue float64                          `json:"revenue"`
	Profit  float64                          `json:"profit"`
	ByType  map[models.SaleType]TypeBreakdown `json:"by_type"`
}

// ItemsSummary rolls up the items inside the window.
type ItemsSummary struct {
	Count          int64                       `json:"count"`
	InventoryValue float64                     `json:"inventory_value"`
	ByStatus       map[models.StockStatus]int64 `json:"by_status"`
}

// TasksSummary rolls up the tasks inside the window.
type TasksSummary struct {
	Count      int64                                 `json:"count"`
	Profit     float64                               `json:"profit"`
	Cost       float64                               `json:"cost"`
	ByLocation map[models.SaleType]LocationBreakdown `json:"by_location"`
}

// TrendPoint is one time bucket in the trend, keyed "2006-01-02" for
// daily buckets and "2006-01" for monthly ones.
type TrendPoint struct {
	Bucket     string  `json:"bucket"`
	Sales      int64   `json:"sales"`
	Revenue    float64 `json:"revenue"`
	Profit     float64 `json:"profit"`
	Tasks      int64   `json:"tasks"`
	TaskProfit float64 `json:"task_profit"`
	TaskCost   float64 `json:"task_cost"`
}

// Summary is the full dashboard payload.
type Summary struct {
	Period Period       `json:"period"`
	From   *time.Time   `json:"from,omitempty"`
	To     *time.Time   `json:"to,omitempty"`
	Sales  SalesSummary `json:"sales"`
	Items  ItemsSummary `json:"items"`
	Tasks  TasksSummary `json:"tasks"`
	Trend  []TrendPoint `json:"trend"`
}

// DashboardService computes read-only rollups over the other ledgers.
// It never mutates anything.
type DashboardService struct {
	items repository.ItemRepository
	sales repository.SaleRepository
	tasks repository.TaskRepository
}

func NewDashboardService(items repository.ItemRepository, sales repository.SaleRepository, tasks repository.TaskRepository) *DashboardService {
	return &DashboardService{items: items, sales: sales, tasks: tasks}
}

// ResolvePeriod turns a period selector into a concrete [from, to] range
// relative to now. Nil pointers mean "no bound" (the all period).
// today is the current calendar day; week, month and year are rolling
// windows ending now.
func ResolvePeriod(period Period, customFrom, customTo, now time.Time) (*time.Time, *time.Time, error) {
	switch period {
	case PeriodAll:
		return nil, nil, nil
	case PeriodToday:
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return &from, &now, nil
	case PeriodWeek:
		from := now.AddDate(0, 0, -7)
		return &from, &now, nil
	case PeriodMonth:
		from := now.AddDate(0, -1, 0)
		return &from, &now, nil
	case PeriodYear:
		from := now.AddDate(-1, 0, 0)
		return &from, &now, nil
	case PeriodCustom:
		if customFrom.IsZero() || customTo.IsZero() || customTo.Before(customFrom) {
			return nil, nil, ErrInvalidInput
		}
		return &customFrom, &customTo, nil
	default:
		return nil, nil, ErrInvalidInput
	}
}

// Summary builds the rollups and the trend for one user's records that
// fall inside the resolved window.
func (s *DashboardService) Summary(ctx context.Context, userID uint, period Period, customFrom, customTo time.Time) (*Summary, error) {
	now := time.Now().UTC()
	from, to, err := ResolvePeriod(period, customFrom, customTo, now)
	if err != nil {
		return nil, err
	}

	sales, err := s.sales.List(ctx, repository.SaleFilter{SoldByID: &userID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(ctx, repository.ItemFilter{AddedByID: &userID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{CreatedByID: &userID, From: from, To: to})
	if err != nil {
		return nil, err
	}

	out := Summary{
		Period: period,
		From:   from,
		To:     to,
		Sales:  SalesSummary{ByType: make(map[models.SaleType]TypeBreakdown)},
		Items:  ItemsSummary{ByStatus: make(map[models.StockStatus]int64)},
		Tasks:  TasksSummary{ByLocation: make(map[models.SaleType]LocationBreakdown)},
	}

	for _, sale := range sales {
		out.Sales.Count++
		out.Sales.Revenue += sale.TotalAmount
		out.Sales.Profit += sale.Profit
		b := out.Sales.ByType[sale.SaleType]
		b.Count++
		b.Revenue += sale.TotalAmount
		b.Profit += sale.Profit
		out.Sales.ByType[sale.SaleType] = b
	}

	for _, item := range items {
		out.Items.Count++
		out.Items.InventoryValue += item.BasePrice * float64(item.Quantity)
		out.Items.ByStatus[item.Status]++
	}

	for _, task := range tasks {
		out.Tasks.Count++
		out.Tasks.Profit += task.NetProfit
		out.Tasks.Cost += task.TotalCost
		b := out.Tasks.ByLocation[task.SaleLocation]
		b.Count++
		b.Profit += task.NetProfit
		b.Cost += task.TotalCost
		out.Tasks.ByLocation[task.SaleLocation] = b
	}

	out.Trend = buildTrend(sales, tasks, from, to)
	return &out, nil
}

// buildTrend groups sales and tasks into ascending time buckets: daily
// for short windows, monthly once the window passes three months (or is
// unbounded).
func buildTrend(sales []models.Sale, tasks []models.Task, from, to *time.Time) []TrendPoint {
	layout := "2006-01-02"
	if from == nil || to == nil || to.Sub(*from) > monthlyBucketCutoff {
		layout = "2006-01"
	}

	buckets := make(map[string]*TrendPoint)
	bucket := func(t time.Time) *TrendPoint {
		key := t.Format(layout)
		p, ok := buckets[key]
		if !ok {
			p = &TrendPoint{Bucket: key}
			buckets[key] = p
		}
		return p
	}

	for _, sale := range sales {
		p := bucket(sale.SaleDate)
		p.Sales++
		p.Revenue += sale.TotalAmount
		p.Profit += sale.Profit
	}
	for _, task := range tasks {
		p := bucket(task.TaskDate)
		p.Tasks++
		p.TaskProfit += task.NetProfit
		p.TaskCost += task.TotalCost
	}

	out := make([]TrendPoint, 0, len(buckets))
	for _, p := range buckets {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out
}

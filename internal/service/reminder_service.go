package service

import (
	"context"
	"time"

	"soleledger/internal/models"
	"soleledger/internal/repository"
)

// ReminderService stores dated notes and runs the due sweep the web
// dashboard polls. The sweep is a stateless query-and-flip: running it
// twice only finds already-sent reminders the second time.
type ReminderService struct {
	reminders repository.ReminderRepository
}

func NewReminderService(reminders repository.ReminderRepository) *ReminderService {
	return &ReminderService{reminders: reminders}
}

// ReminderInput carries the caller-editable fields of a reminder.
type ReminderInput struct {
	Title       string
	Description string
	ActionAt    time.Time
}

func (s *ReminderService) Create(ctx context.Context, userID uint, in ReminderInput) (*models.Reminder, error) {
	if in.Title == "" || in.ActionAt.IsZero() {
		return nil, ErrInvalidInput
	}
	r := models.Reminder{
		Title:       in.Title,
		Description: in.Description,
		ActionAt:    in.ActionAt,
		CreatedByID: userID,
	}
	if err := s.reminders.Create(ctx, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ReminderService) List(ctx context.Context, userID uint) ([]models.Reminder, error) {
	return s.reminders.List(ctx, repository.ReminderFilter{CreatedByID: &userID})
}

func (s *ReminderService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	return s.reminders.Delete(ctx, id)
}

// SweepDue marks the user's unsent reminders whose action time falls
// within the window from now as sent and returns the ones just marked.
func (s *ReminderService) SweepDue(ctx context.Context, userID uint, window time.Duration) ([]models.Reminder, error) {
	if window < 0 {
		return nil, ErrInvalidInput
	}
	now := time.Now().UTC()
	cutoff := now.Add(window)
	due, err := s.reminders.List(ctx, repository.ReminderFilter{
		CreatedByID: &userID,
		Unsent:      true,
		DueBefore:   &cutoff,
	})
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		return []models.Reminder{}, nil
	}
	ids := make([]uint, 0, len(due))
	for _, r := range due {
		ids = append(ids, r.ID)
	}
	if err := s.reminders.MarkSent(ctx, ids, now); err != nil {
		return nil, err
	}
	for i := range due {
		due[i].Sent = true
		sentAt := now
		due[i].SentAt = &sentAt
	}
	return due, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"soleledger/internal/repository"
)

func setupReminders(t *testing.T) *ReminderService {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewReminderService(repository.NewMemoryReminders(store))
}

func TestSweepDue(t *testing.T) {
	ctx := context.Background()
	reminders := setupReminders(t)
	now := time.Now().UTC()

	overdue, _ := reminders.Create(ctx, 1, ReminderInput{Title: "Call supplier", ActionAt: now.Add(-time.Hour)})
	soon, _ := reminders.Create(ctx, 1, ReminderInput{Title: "Restock boots", ActionAt: now.Add(30 * time.Second)})
	later, _ := reminders.Create(ctx, 1, ReminderInput{Title: "Quarterly stocktake", ActionAt: now.Add(48 * time.Hour)})
	otherUser, _ := reminders.Create(ctx, 2, ReminderInput{Title: "Not mine", ActionAt: now.Add(-time.Hour)})

	marked, err := reminders.SweepDue(ctx, 1, time.Minute)
	assert.NoError(t, err)
	if assert.Len(t, marked, 2) {
		assert.Equal(t, overdue.ID, marked[0].ID)
		assert.Equal(t, soon.ID, marked[1].ID)
		for _, r := range marked {
			assert.True(t, r.Sent)
			assert.NotNil(t, r.SentAt)
		}
	}

	// second sweep is a no-op for the already-sent ones
	marked, err = reminders.SweepDue(ctx, 1, time.Minute)
	assert.NoError(t, err)
	assert.Empty(t, marked)

	all, _ := reminders.List(ctx, 1)
	assert.Len(t, all, 3)
	for _, r := range all {
		if r.ID == later.ID {
			assert.False(t, r.Sent)
		}
	}

	// the other user's reminder was untouched
	theirs, _ := reminders.List(ctx, 2)
	if assert.Len(t, theirs, 1) {
		assert.Equal(t, otherUser.ID, theirs[0].ID)
		assert.False(t, theirs[0].Sent)
	}
}

func TestReminderCreate_Validation(t *testing.T) {
	ctx := context.Background()
	reminders := setupReminders(t)

	_, err := reminders.Create(ctx, 1, ReminderInput{Title: "", ActionAt: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = reminders.Create(ctx, 1, ReminderInput{Title: "No date"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = reminders.SweepDue(ctx, 1, -time.Minute)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

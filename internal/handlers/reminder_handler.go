package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"soleledger/internal/service"
)

type reminderRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ActionAt    string `json:"action_at" binding:"required"`
}

func (s *Server) createReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	actionAt, err := parseDate(req.ActionAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action date"})
		return
	}
	r, err := s.cfg.Reminders.Create(c, currentUserID(c), service.ReminderInput{
		Title:       req.Title,
		Description: req.Description,
		ActionAt:    actionAt,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *Server) listReminders(c *gin.Context) {
	reminders, err := s.cfg.Reminders.List(c, currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (s *Server) deleteReminder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reminder ID"})
		return
	}
	if err := s.cfg.Reminders.Delete(c, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully"})
}

// sweepReminders is what the frontend polls: it flips the caller's due
// reminders to sent and returns just the newly flipped ones, so each
// reminder pops up exactly once.
func (s *Server) sweepReminders(c *gin.Context) {
	window := 60 * time.Second
	if v := c.Query("window_seconds"); v != "" {
		secs, err := parseID(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid window"})
			return
		}
		window = time.Duration(secs) * time.Second
	}
	due, err := s.cfg.Reminders.SweepDue(c, currentUserID(c), window)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, due)
}

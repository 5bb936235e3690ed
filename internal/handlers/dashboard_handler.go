package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"soleledger/internal/service"
)

func (s *Server) dashboard(c *gin.Context) {
	period := service.Period(c.DefaultQuery("period", string(service.PeriodToday)))

	var customFrom, customTo time.Time
	if v := c.Query("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		customFrom = t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		customTo = t
	}

	summary, err := s.cfg.Dashboard.Summary(c, currentUserID(c), period, customFrom, customTo)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

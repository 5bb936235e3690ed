package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type askRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *Server) ask(c *gin.Context) {
	if s.cfg.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, err := s.cfg.Assistant.Run(c, currentUserID(c), req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soleledger/internal/models"
	"soleledger/internal/repository"
	"soleledger/internal/service"
)

type taskRequest struct {
	ShoeType      string  `json:"shoe_type"`
	SaleLocation  string  `json:"sale_location"`
	BasePrice     float64 `json:"base_price"`
	ProfitGained  float64 `json:"profit_gained"`
	TaxiCost      float64 `json:"taxi_cost"`
	OtherCosts    float64 `json:"other_costs"`
	Supplier      string  `json:"supplier"`
	ClientDetails string  `json:"client_details"`
	Notes         string  `json:"notes"`
	TaskDate      string  `json:"task_date"`
}

func (r taskRequest) toInput(c *gin.Context) (service.TaskInput, bool) {
	in := service.TaskInput{
		ShoeType:      r.ShoeType,
		SaleLocation:  models.SaleType(r.SaleLocation),
		BasePrice:     r.BasePrice,
		ProfitGained:  r.ProfitGained,
		TaxiCost:      r.TaxiCost,
		OtherCosts:    r.OtherCosts,
		Supplier:      r.Supplier,
		ClientDetails: r.ClientDetails,
		Notes:         r.Notes,
	}
	if r.TaskDate != "" {
		t, err := parseDate(r.TaskDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task date"})
			return in, false
		}
		in.TaskDate = &t
	}
	return in, true
}

func (s *Server) createTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	task, err := s.cfg.Tasks.Create(c, currentUserID(c), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) getTask(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}
	task, err := s.cfg.Tasks.GetByID(c, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) updateTask(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	task, err := s.cfg.Tasks.Update(c, id, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}
	if err := s.cfg.Tasks.Delete(c, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (s *Server) listTasks(c *gin.Context) {
	var f repository.TaskFilter
	var ok bool
	if f.From, f.To, ok = parseRange(c); !ok {
		return
	}
	tasks, err := s.cfg.Tasks.List(c, f)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soleledger/internal/models"
	"soleledger/internal/repository"
	"soleledger/internal/service"
)

type itemRequest struct {
	Name         string  `json:"name"`
	ShoeType     string  `json:"shoe_type"`
	BasePrice    float64 `json:"base_price"`
	SellingPrice float64 `json:"selling_price"`
	Quantity     int     `json:"quantity"`
	Supplier     string  `json:"supplier"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
}

func (r itemRequest) toInput() service.ItemInput {
	return service.ItemInput{
		Name:         r.Name,
		ShoeType:     r.ShoeType,
		BasePrice:    r.BasePrice,
		SellingPrice: r.SellingPrice,
		Quantity:     r.Quantity,
		Supplier:     r.Supplier,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
	}
}

func (s *Server) createItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	item, err := s.cfg.Items.Create(c, currentUserID(c), req.toInput())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) getItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}
	item, err := s.cfg.Items.GetByID(c, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) updateItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	item, err := s.cfg.Items.Update(c, id, req.toInput())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) deleteItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}
	if err := s.cfg.Items.Delete(c, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

func (s *Server) listItems(c *gin.Context) {
	var f repository.ItemFilter
	if q := c.Query("q"); q != "" {
		f.NameSubstring = q
	}
	if st := c.Query("shoe_type"); st != "" {
		f.ShoeType = st
	}
	if status := c.Query("status"); status != "" {
		v := models.StockStatus(status)
		f.Status = &v
	}
	items, err := s.cfg.Items.List(c, f)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type adjustRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// adjustItem is the manual stock correction path (deliveries, damaged
// pairs). Sales never come through here.
func (s *Server) adjustItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	item, err := s.cfg.Items.AdjustQuantity(c, id, req.Delta)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

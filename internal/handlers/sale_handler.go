package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"soleledger/internal/models"
	"soleledger/internal/repository"
	"soleledger/internal/service"
)

type recordSaleRequest struct {
	ItemID        *uint    `json:"item_id"`
	ItemName      string   `json:"item_name"`
	Quantity      int      `json:"quantity"`
	SellingPrice  float64  `json:"selling_price"`
	BasePrice     *float64 `json:"base_price"`
	SaleType      string   `json:"sale_type"`
	ClientPhone   string   `json:"client_phone"`
	ClientAddress string   `json:"client_address"`
	ClientNotes   string   `json:"client_notes"`
	SaleDate      string   `json:"sale_date"`
}

func (s *Server) recordSale(c *gin.Context) {
	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	in := service.RecordSaleInput{
		ItemID:        req.ItemID,
		ItemName:      req.ItemName,
		Quantity:      req.Quantity,
		SellingPrice:  req.SellingPrice,
		BasePrice:     req.BasePrice,
		SaleType:      models.SaleType(req.SaleType),
		ClientPhone:   req.ClientPhone,
		ClientAddress: req.ClientAddress,
		ClientNotes:   req.ClientNotes,
	}
	if req.SaleDate != "" {
		t, err := parseDate(req.SaleDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale date"})
			return
		}
		in.SaleDate = &t
	}

	sale, err := s.cfg.Sales.Record(c, currentUserID(c), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (s *Server) getSale(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID"})
		return
	}
	sale, err := s.cfg.Sales.GetByID(c, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (s *Server) listSales(c *gin.Context) {
	var f repository.SaleFilter
	if st := c.Query("type"); st != "" {
		v := models.SaleType(st)
		f.SaleType = &v
	}
	if itemID := c.Query("item_id"); itemID != "" {
		id, err := parseID(itemID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
			return
		}
		f.ItemID = &id
	}
	var ok bool
	if f.From, f.To, ok = parseRange(c); !ok {
		return
	}
	sales, err := s.cfg.Sales.List(c, f)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

type updateSaleRequest struct {
	SellingPrice  *float64 `json:"selling_price"`
	ClientPhone   *string  `json:"client_phone"`
	ClientAddress *string  `json:"client_address"`
	ClientNotes   *string  `json:"client_notes"`
}

func (s *Server) updateSale(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID"})
		return
	}
	var req updateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	sale, err := s.cfg.Sales.Update(c, id, service.UpdateSaleInput{
		SellingPrice:  req.SellingPrice,
		ClientPhone:   req.ClientPhone,
		ClientAddress: req.ClientAddress,
		ClientNotes:   req.ClientNotes,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (s *Server) deleteSale(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID"})
		return
	}
	if err := s.cfg.Sales.Delete(c, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted and stock restored"})
}

// parseRange reads the optional from/to query params. On a bad value it
// writes the 400 itself and reports !ok.
func parseRange(c *gin.Context) (from, to *time.Time, ok bool) {
	if v := c.Query("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return nil, nil, false
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}

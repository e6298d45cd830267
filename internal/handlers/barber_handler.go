package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jojo-brz/saas-barbearia/internal/middleware"
	"github.com/Jojo-brz/saas-barbearia/internal/models"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

type BarberRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

func (h *BarberHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var barbers []models.Barber
	if err := h.db.
		Where("barbershop_id = ?", shopID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_barbers"})
		return
	}

	c.JSON(http.StatusOK, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	barber := models.Barber{
		BarbershopID: shopID,
		Name:         req.Name,
		Active:       true,
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Create(&barber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_barber"})
		return
	}

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	var barber models.Barber
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, shopID).
		First(&barber).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "barber_not_found"})
		return
	}

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	barber.Name = req.Name
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Save(&barber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_barber"})
		return
	}

	c.JSON(http.StatusOK, barber)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jojo-brz/saas-barbearia/internal/httpresp"
	"github.com/Jojo-brz/saas-barbearia/internal/middleware"
	"github.com/Jojo-brz/saas-barbearia/internal/models"
	"github.com/Jojo-brz/saas-barbearia/internal/timezone"
)

type BarbershopHandler struct {
	db *gorm.DB
}

func NewBarbershopHandler(db *gorm.DB) *BarbershopHandler {
	return &BarbershopHandler{db: db}
}

type BarbershopUpdateRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "barbershop_not_found"})
		return
	}

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "barbershop_not_found"})
		return
	}

	var req BarbershopUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Name != "" {
		shop.Name = req.Name
	}
	if req.Phone != "" {
		shop.Phone = req.Phone
	}
	if req.Address != "" {
		shop.Address = req.Address
	}
	if req.Timezone != "" && timezone.IsValid(req.Timezone) {
		shop.Timezone = req.Timezone
	}

	if err := h.db.Save(&shop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_barbershop"})
		return
	}

	httpresp.OK(c, shop)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jojo-brz/saas-barbearia/internal/middleware"
	"github.com/Jojo-brz/saas-barbearia/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Active      *bool   `json:"active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var services []models.Service
	if err := h.db.
		Where("barbershop_id = ?", shopID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	svc := models.Service{
		BarbershopID: shopID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationMin:  req.DurationMin,
		Active:       true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Create(&svc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, shopID).
		First(&svc).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	// Duration changes apply to future admissions only; committed
	// bookings keep the duration captured when they were created.
	svc.Name = req.Name
	svc.Description = req.Description
	svc.Price = req.Price
	svc.DurationMin = req.DurationMin
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	c.JSON(http.StatusOK, svc)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jojo-brz/saas-barbearia/internal/httperr"
	"github.com/Jojo-brz/saas-barbearia/internal/httpresp"
	"github.com/Jojo-brz/saas-barbearia/internal/models"
	ucBooking "github.com/Jojo-brz/saas-barbearia/internal/usecase/booking"
)

// PublicHandler serves the customer-facing booking page API. No login:
// a customer picks a service, a barber, a date and a slot, then submits
// name and phone.
type PublicHandler struct {
	db       *gorm.DB
	getSlots *ucBooking.GetSlotGrid
	admit    *ucBooking.AdmitBooking
	cancel   *ucBooking.CancelBooking
}

func NewPublicHandler(
	db *gorm.DB,
	getSlots *ucBooking.GetSlotGrid,
	admit *ucBooking.AdmitBooking,
	cancel *ucBooking.CancelBooking,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		getSlots: getSlots,
		admit:    admit,
		cancel:   cancel,
	}
}

// --------- Requests ---------

type PublicCreateBookingRequest struct {
	BarberID  uint `json:"barber_id" binding:"required"`
	ServiceID uint `json:"service_id" binding:"required"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
}

type PublicCancelBookingRequest struct {
	CustomerPhone string `json:"customer_phone" binding:"required"`
}

// --------- Helpers ---------

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbershop, bool) {
	var shop models.Barbershop
	if err := h.db.Where("slug = ?", c.Param("slug")).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	return &shop, true
}

// --------- Catalog ---------

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("barbershop_id = ? AND active = true", shop.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"services":   services,
	})
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var barbers []models.Barber
	if err := h.db.
		Where("barbershop_id = ? AND active = true", shop.ID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	httpresp.List(c, barbers)
}

// --------- Availability ---------

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	barberID, err1 := strconv.ParseUint(c.Query("barber_id"), 10, 64)
	serviceID, err2 := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if dateStr == "" || err1 != nil || err2 != nil {
		httperr.BadRequest(c, "missing_params", "Data, barbeiro e serviço obrigatórios.")
		return
	}

	grid, err := h.getSlots.Execute(c.Request.Context(), ucBooking.SlotQuery{
		ShopID:    shop.ID,
		BarberID:  uint(barberID),
		ServiceID: uint(serviceID),
		Date:      dateStr,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": grid,
	})
}

// --------- Booking ---------

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.admit.Execute(c.Request.Context(), ucBooking.AdmitCommand{
		Shop:          shop,
		BarberID:      req.BarberID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		if httperr.IsBusiness(err, "barber_inactive") {
			httperr.BadRequest(c, "barber_inactive", "Este barbeiro não está mais atendendo.")
			return
		}
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *PublicHandler) CancelBooking(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicCancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), ucBooking.CancelCommand{
		PublicID:   c.Param("id"),
		ShopID:     shop.ID,
		MatchPhone: req.CustomerPhone,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

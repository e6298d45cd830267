package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jojo-brz/saas-barbearia/internal/httperr"
	"github.com/Jojo-brz/saas-barbearia/internal/middleware"
	"github.com/Jojo-brz/saas-barbearia/internal/models"
	ucBooking "github.com/Jojo-brz/saas-barbearia/internal/usecase/booking"
)

// BookingHandler is the owner's view over bookings: the daily agenda
// plus cancellation. Creation goes through the same public admission
// path; the owner books on behalf of walk-in customers via the public
// endpoint of their own shop.
type BookingHandler struct {
	db     *gorm.DB
	cancel *ucBooking.CancelBooking
}

func NewBookingHandler(db *gorm.DB, cancel *ucBooking.CancelBooking) *BookingHandler {
	return &BookingHandler{db: db, cancel: cancel}
}

func (h *BookingHandler) ListByDate(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	q := h.db.
		Where("barbershop_id = ? AND date = ?", shopID, dateStr).
		Order("start_min ASC")

	if barberID := c.Query("barber_id"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     dateStr,
		"bookings": bookings,
	})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	b, err := h.cancel.Execute(c.Request.Context(), ucBooking.CancelCommand{
		PublicID: c.Param("id"),
		ShopID:   shopID,
		OwnerID:  &ownerID,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

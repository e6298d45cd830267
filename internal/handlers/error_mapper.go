package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jojo-brz/saas-barbearia/internal/booking"
	"github.com/Jojo-brz/saas-barbearia/internal/httperr"
	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
)

// writeDomainError translates the engine's typed errors into the JSON
// error envelope. All four kinds are terminal for the caller: a
// conflict means "re-fetch the grid and pick again", never a retry.
func writeDomainError(c *gin.Context, err error) {
	var notFound *booking.NotFoundError
	var conflict *booking.ConflictError
	var invalid *booking.ValidationError
	var badSchedule *schedule.InvalidScheduleError
	var business httperr.BusinessError

	switch {
	case errors.As(err, &notFound):
		httperr.NotFound(c, "not_found", notFound.Error())

	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error_code":             "time_conflict",
			"message":                "Horário já reservado. Escolha outro horário.",
			"conflicting_booking_id": conflict.ConflictingBookingID,
		})

	case errors.As(err, &invalid):
		httperr.BadRequest(c, invalid.Reason, "Dados inválidos para agendamento.")

	case errors.As(err, &business):
		httperr.BadRequest(c, business.Code, "Operação não permitida.")

	case errors.As(err, &badSchedule):
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_schedule",
			"day":        badSchedule.Day.String(),
			"field":      badSchedule.Field,
		})

	default:
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}

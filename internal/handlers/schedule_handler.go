package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jojo-brz/saas-barbearia/internal/cache"
	"github.com/Jojo-brz/saas-barbearia/internal/middleware"
	"github.com/Jojo-brz/saas-barbearia/internal/models"
	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
)

// ScheduleHandler lets the shop owner read and replace the weekly
// schedule. Validation happens here, at the write boundary; reads
// elsewhere trust stored rows.
type ScheduleHandler struct {
	db    *gorm.DB
	cache *cache.SlotsCache
}

func NewScheduleHandler(db *gorm.DB, slotsCache *cache.SlotsCache) *ScheduleHandler {
	return &ScheduleHandler{db: db, cache: slotsCache}
}

type ScheduleDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	Open       string `json:"open"`
	Close      string `json:"close"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var days []models.ScheduleDay
	if err := h.db.
		Where("barbershop_id = ?", shopID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_schedule"})
		return
	}

	c.JSON(http.StatusOK, days)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	weekly, rows, err := buildSchedule(shopID, req.Days)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if err := weekly.Validate(); err != nil {
		writeDomainError(c, err)
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barbershop_id = ?", shopID).
			Delete(&models.ScheduleDay{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_schedule"})
		return
	}

	// Cached grids were derived from the old hours.
	h.cache.InvalidateShop(c.Request.Context(), shopID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// buildSchedule parses the request into both the domain form (for
// validation) and the storage rows. Parse failures surface as
// InvalidScheduleError naming the offending day and field.
func buildSchedule(shopID uint, days []ScheduleDayConfig) (schedule.Weekly, []models.ScheduleDay, error) {
	weekly := make(schedule.Weekly, len(days))
	rows := make([]models.ScheduleDay, 0, len(days))

	for _, d := range days {
		day := time.Weekday(d.Weekday)

		rule := schedule.DayRule{Active: d.Active}
		if d.Active {
			open, err := schedule.ParseWallClock(d.Open)
			if err != nil {
				return nil, nil, &schedule.InvalidScheduleError{Day: day, Field: "open"}
			}
			close, err := schedule.ParseWallClock(d.Close)
			if err != nil {
				return nil, nil, &schedule.InvalidScheduleError{Day: day, Field: "close"}
			}
			rule.Open = open
			rule.Close = close

			if d.BreakStart != "" || d.BreakEnd != "" {
				bs, err := schedule.ParseWallClock(d.BreakStart)
				if err != nil {
					return nil, nil, &schedule.InvalidScheduleError{Day: day, Field: "break_start"}
				}
				be, err := schedule.ParseWallClock(d.BreakEnd)
				if err != nil {
					return nil, nil, &schedule.InvalidScheduleError{Day: day, Field: "break_end"}
				}
				rule.BreakStart = &bs
				rule.BreakEnd = &be
			}
		}

		weekly[day] = rule
		rows = append(rows, models.ScheduleDay{
			BarbershopID: shopID,
			Weekday:      d.Weekday,
			Active:       d.Active,
			Open:         d.Open,
			Close:        d.Close,
			BreakStart:   d.BreakStart,
			BreakEnd:     d.BreakEnd,
		})
	}

	return weekly, rows, nil
}

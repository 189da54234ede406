package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Bitshala/admin/internal/dto"
	"github.com/Bitshala/admin/internal/models"
	appErrors "github.com/Bitshala/admin/pkg/errors"
	"github.com/Bitshala/admin/pkg/response"
)

type rosterService interface {
	GetWeek(ctx context.Context, week int) ([]models.WeekRecord, error)
	UpsertWeek(ctx context.Context, week int, records []models.WeekRecord) error
	DeleteRecord(ctx context.Context, week int, name, mail string) error
	WeeklyAttendance(ctx context.Context, week int) (*models.WeeklyAttendance, error)
	StudentCount(ctx context.Context) (int, error)
}

// RosterHandler exposes the weekly roster endpoints.
type RosterHandler struct {
	service   rosterService
	validator *validator.Validate
}

// NewRosterHandler constructs the handler.
func NewRosterHandler(service rosterService, validate *validator.Validate) *RosterHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &RosterHandler{service: service, validator: validate}
}

// GetWeek godoc
// @Summary Fetch (and seed) the roster for a week
// @Tags Roster
// @Produce json
// @Param week path int true "Week number"
// @Success 200 {object} response.Envelope
// @Router /weekly_data/{week} [get]
func (h *RosterHandler) GetWeek(c *gin.Context) {
	week, err := parseWeekParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.service.GetWeek(c.Request.Context(), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.FromRecords(records), nil)
}

// SaveWeek godoc
// @Summary Bulk upsert roster rows for a week
// @Tags Roster
// @Accept json
// @Produce json
// @Param week path int true "Week number"
// @Param rows body []dto.WeekRecordWire true "Roster rows"
// @Success 200 {object} response.Envelope
// @Router /weekly_data/{week} [post]
func (h *RosterHandler) SaveWeek(c *gin.Context) {
	week, err := parseWeekParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var rows []dto.WeekRecordWire
	if err := c.ShouldBindJSON(&rows); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload"))
		return
	}
	for _, row := range rows {
		if err := h.validator.Struct(row); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster row"))
			return
		}
	}

	if err := h.service.UpsertWeek(c.Request.Context(), week, dto.ToRecords(rows)); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"saved": len(rows)}, nil)
}

// DeleteRecord godoc
// @Summary Remove one student's row from a week
// @Tags Roster
// @Accept json
// @Produce json
// @Param week path int true "Week number"
// @Param record body dto.WeekRecordWire true "Row to remove"
// @Success 204
// @Router /weekly_data/{week}/delete [post]
func (h *RosterHandler) DeleteRecord(c *gin.Context) {
	week, err := parseWeekParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var row dto.WeekRecordWire
	if err := c.ShouldBindJSON(&row); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid record payload"))
		return
	}
	if err := h.validator.Struct(row); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid record payload"))
		return
	}

	record := dto.ToRecord(row)
	if err := h.service.DeleteRecord(c.Request.Context(), week, record.Name, record.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// WeeklyAttendance godoc
// @Summary Count attendance for a week
// @Tags Roster
// @Produce json
// @Param week path int true "Week number"
// @Success 200 {object} response.Envelope
// @Router /attendance/weekly_counts/{week} [get]
func (h *RosterHandler) WeeklyAttendance(c *gin.Context) {
	week, err := parseWeekParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	att, err := h.service.WeeklyAttendance(c.Request.Context(), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, att, nil)
}

// StudentCount godoc
// @Summary Count distinct students on the roster
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/count [get]
func (h *RosterHandler) StudentCount(c *gin.Context) {
	count, err := h.service.StudentCount(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"count": count}, nil)
}

func parseWeekParam(c *gin.Context) (int, error) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "week must be a non-negative integer")
	}
	return week, nil
}

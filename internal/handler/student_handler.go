package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Bitshala/admin/internal/models"
	appErrors "github.com/Bitshala/admin/pkg/errors"
	"github.com/Bitshala/admin/pkg/response"
)

type studentService interface {
	History(ctx context.Context, name string) (*models.StudentProfile, error)
	Background(ctx context.Context, email string) (*models.StudentBackground, error)
	SubmissionLink(ctx context.Context, week int, name string) (*models.SubmissionLink, error)
}

// StudentHandler exposes per-student detail endpoints.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service studentService) *StudentHandler {
	return &StudentHandler{service: service}
}

// History godoc
// @Summary Week-by-week record for one student
// @Tags Students
// @Produce json
// @Param name path string true "Student name (underscores for spaces)"
// @Success 200 {object} response.Envelope
// @Router /students/{name}/history [get]
func (h *StudentHandler) History(c *gin.Context) {
	profile, err := h.service.History(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Background godoc
// @Summary Self-reported enrollment profile
// @Tags Students
// @Produce json
// @Param email query string true "Student email"
// @Success 200 {object} response.Envelope
// @Router /students/background [get]
func (h *StudentHandler) Background(c *gin.Context) {
	bg, err := h.service.Background(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bg, nil)
}

// Submission godoc
// @Summary Exercise submission link for one student and week
// @Tags Students
// @Produce json
// @Param name path string true "Student name (underscores for spaces)"
// @Param week query int true "Week number"
// @Success 200 {object} response.Envelope
// @Router /students/{name}/submission [get]
func (h *StudentHandler) Submission(c *gin.Context) {
	week, err := strconv.Atoi(c.Query("week"))
	if err != nil || week < 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "week must be a non-negative integer"))
		return
	}
	link, err := h.service.SubmissionLink(c.Request.Context(), week, c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link, nil)
}

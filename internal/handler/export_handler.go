package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bitshala/admin/pkg/response"
)

type exportService interface {
	WeekCSV(ctx context.Context, week int) ([]byte, string, error)
	WeekPDF(ctx context.Context, week int) ([]byte, string, error)
}

// ExportHandler serves roster downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// WeekCSV godoc
// @Summary Download one week's roster as CSV
// @Tags Exports
// @Produce text/csv
// @Param week path int true "Week number"
// @Success 200 {file} file
// @Router /weekly_data/{week}/export.csv [get]
func (h *ExportHandler) WeekCSV(c *gin.Context) {
	week, err := parseWeekParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, filename, err := h.service.WeekCSV(c.Request.Context(), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}

// WeekPDF godoc
// @Summary Download one week's roster as PDF
// @Tags Exports
// @Produce application/pdf
// @Param week path int true "Week number"
// @Success 200 {file} file
// @Router /weekly_data/{week}/export.pdf [get]
func (h *ExportHandler) WeekPDF(c *gin.Context) {
	week, err := parseWeekParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, filename, err := h.service.WeekPDF(c.Request.Context(), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/report"
	"github.com/Theijiii/plms-sys-sub004/internal/service"
)

// ReportHandler handles downloadable register reports.
type ReportHandler struct {
	appService service.ApplicationService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(appService service.ApplicationService) *ReportHandler {
	return &ReportHandler{appService: appService}
}

// RegisterXLSX handles GET /api/v1/reports/register.xlsx
func (h *ReportHandler) RegisterXLSX(c *gin.Context) {
	d := domain.PermitDomain(c.Query("domain"))
	if !d.Valid() {
		RespondError(c, http.StatusBadRequest, "unknown permit domain")
		return
	}

	views, _, counts, err := h.appService.List(c.Request.Context(), service.ListApplicationsInput{
		Domain: d,
		Limit:  10000,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	f, err := report.BuildRegister(d, views, counts)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	filename := fmt.Sprintf("%s-register-%s.xlsx", d, time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		// Headers are already out; nothing recoverable here.
		return
	}
}

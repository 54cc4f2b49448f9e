package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Theijiii/plms-sys-sub004/internal/csvexport"
	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/middleware"
	"github.com/Theijiii/plms-sys-sub004/internal/service"
)

const defaultPageSize = 50

// PermitHandler handles permit application endpoints.
type PermitHandler struct {
	appService    service.ApplicationService
	reviewService service.ReviewService
}

// NewPermitHandler creates a new PermitHandler.
func NewPermitHandler(appService service.ApplicationService, reviewService service.ReviewService) *PermitHandler {
	return &PermitHandler{appService: appService, reviewService: reviewService}
}

// List handles GET /api/v1/permits
// @Summary List permit applications for a domain
// @Tags permits
// @Produce json
// @Param domain query string true "Permit domain (barangay|business)"
// @Param status query string false "Filter by status code"
// @Param q query string false "Search applicant name or reference no"
// @Success 200 {object} APIResponse{data=[]service.ApplicationView}
// @Security BearerAuth
// @Router /permits [get]
func (h *PermitHandler) List(c *gin.Context) {
	d := domain.PermitDomain(c.Query("domain"))
	if !d.Valid() {
		RespondError(c, http.StatusBadRequest, "unknown permit domain")
		return
	}
	offset, limit := pagination(c)

	views, total, counts, err := h.appService.List(c.Request.Context(), service.ListApplicationsInput{
		Domain: d,
		Status: c.Query("status"),
		Search: c.Query("q"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, views,
		PagMeta{Total: total, Offset: offset, Limit: limit},
		countsMap(counts))
}

// GetByID handles GET /api/v1/permits/:id. The payload carries the
// application view plus the statuses the action menu may offer; a terminal
// application gets an empty menu.
func (h *PermitHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.appService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"application": view,
		"transitions": h.reviewService.Transitions(view.Domain, view.Status),
	})
}

// ListDocuments handles GET /api/v1/permits/:id/documents, for rows whose
// attachments were not embedded in the detail response.
func (h *PermitHandler) ListDocuments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	files, err := h.appService.ListDocuments(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, files)
}

// DownloadDocument handles GET /api/v1/permits/:id/documents/:doc/download,
// streaming the attachment's bytes through the API for deployments where the
// object store is private.
func (h *PermitHandler) DownloadDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := h.appService.DownloadDocument(c.Request.Context(), id, c.Param("doc"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Name+`"`)
	c.Data(http.StatusOK, doc.MimeType, doc.Content)
}

type updateStatusInput struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
	Version *int64 `json:"version"`
}

// UpdateStatus handles POST /api/v1/permits/:id/status
// @Summary Apply a reviewer action
// @Tags permits
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param body body updateStatusInput true "Target status, optional comment, optional version token"
// @Success 200 {object} APIResponse{data=domain.PermitApplication}
// @Failure 400 {object} APIResponse "Rejection without a reason or unknown status"
// @Failure 409 {object} APIResponse "Terminal state or version conflict"
// @Security BearerAuth
// @Router /permits/{id}/status [post]
func (h *PermitHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "missing reviewer context")
		return
	}

	var input updateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "status is required")
		return
	}

	updated, err := h.reviewService.ApplyAction(c.Request.Context(), &service.ApplyActionInput{
		ApplicationID: id,
		TargetCode:    input.Status,
		Comment:       input.Comment,
		Version:       input.Version,
		ActorID:       userID,
		ActorName:     middleware.GetEmail(c),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	// The returned status and comment log are authoritative; clients
	// replace local state with them rather than merging.
	RespondOK(c, updated)
}

// ListActions handles GET /api/v1/permits/:id/actions: the session-local
// action history, oldest first. Not the durable audit trail.
func (h *PermitHandler) ListActions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	RespondOK(c, h.reviewService.SessionActions(id))
}

// ListAudit handles GET /api/v1/permits/:id/audit: the durable review event
// log, newest first.
func (h *PermitHandler) ListAudit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	offset, limit := pagination(c)

	events, total, err := h.reviewService.ListEvents(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, events, PagMeta{Total: total, Offset: offset, Limit: limit}, nil)
}

// ExportCSV handles GET /api/v1/permits/export.csv
func (h *PermitHandler) ExportCSV(c *gin.Context) {
	d := domain.PermitDomain(c.Query("domain"))
	if !d.Valid() {
		RespondError(c, http.StatusBadRequest, "unknown permit domain")
		return
	}

	views, _, _, err := h.appService.List(c.Request.Context(), service.ListApplicationsInput{
		Domain: d,
		Status: c.Query("status"),
		Limit:  10000,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("%s-permits-%s.csv", d, time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteApplications(views); err != nil {
		return
	}
	w.Flush()
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid application id")
		return uuid.Nil, false
	}
	return id, true
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 200 {
		limit = defaultPageSize
	}
	return offset, limit
}

func countsMap(counts domain.StatusCounts) map[string]int {
	if counts == nil {
		return nil
	}
	out := make(map[string]int, len(counts))
	for s, n := range counts {
		out[string(s)] = n
	}
	return out
}

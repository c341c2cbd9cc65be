package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/ppl-catering/internal/http/middleware"
	"github.com/nurpe/ppl-catering/internal/model"
	"github.com/nurpe/ppl-catering/internal/service"
)

type Services struct {
	Contracts   *service.ContractService
	Catalog     *service.CatalogService
	Assignments *service.AssignmentService
	Minutes     *service.MinuteService
	Exports     *service.ExportService
}

type Handler struct {
	contracts   *service.ContractService
	catalog     *service.CatalogService
	assignments *service.AssignmentService
	minutes     *service.MinuteService
	exports     *service.ExportService
	log         zerolog.Logger
}

func NewHandler(services Services, log zerolog.Logger) *Handler {
	return &Handler{
		contracts:   services.Contracts,
		catalog:     services.Catalog,
		assignments: services.Assignments,
		minutes:     services.Minutes,
		exports:     services.Exports,
		log:         log,
	}
}

// Register mounts the API under /api behind the given middleware chain.
func (h *Handler) Register(router *gin.Engine, protect ...gin.HandlerFunc) {
	api := router.Group("/api")
	api.Use(protect...)

	contracts := api.Group("/contracts")
	contracts.GET("", h.listContracts)
	contracts.POST("", h.createContract)
	contracts.GET("/:id", h.getContract)
	contracts.PUT("/:id", h.updateContract)
	contracts.DELETE("/:id", h.deleteContract)
	contracts.POST("/:id/status", h.changeStatus)
	contracts.POST("/:id/activate", h.activateContract)
	contracts.POST("/:id/inactivate", h.inactivateContract)
	contracts.GET("/:id/zones", h.listContractZones)
	contracts.GET("/:id/units", h.listContractUnits)
	contracts.GET("/:id/units/:unit_id/assignments", h.listUnitAssignments)
	contracts.GET("/:id/assignments/tree", h.assignmentTree)
	contracts.POST("/:id/assignments", h.saveAssignments)
	contracts.GET("/:id/minutes", h.listMinutes)
	contracts.GET("/:id/minutes/calendar", h.minuteCalendar)
	contracts.POST("/:id/minutes", h.scheduleMinute)
	contracts.GET("/:id/export/assignments.xlsx", h.exportAssignments)
	contracts.GET("/:id/export/contract.pdf", h.exportContract)

	api.GET("/third-parties", h.listThirdParties)
	api.GET("/zones", h.listZones)
	api.GET("/units/:id/recipes", h.listUnitRecipes)

	drafts := api.Group("/drafts")
	drafts.POST("", h.createDraft)
	drafts.GET("/:id", h.getDraft)
	drafts.DELETE("/:id", h.discardDraft)
	drafts.POST("/:id/recipes", h.selectRecipe)
	drafts.DELETE("/:id/recipes/:relation_id", h.deselectRecipe)
	drafts.POST("/:id/groups/toggle", h.toggleDraftGroup)
	drafts.POST("/:id/assign", h.assignUnits)
	drafts.DELETE("/:id/units/:unit_id", h.removeDraftUnit)
	drafts.POST("/:id/save", h.saveDraft)
}

func (h *Handler) principal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		h.log.Error().
			Err(err).
			Str("request_id", middleware.RequestID(c)).
			Str("route", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func parseOptionalDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return parseDate(raw)
}

// parseIDList accepts comma separated ids, possibly spread over repeated
// query parameters.
func parseIDList(values []string) ([]int64, error) {
	var ids []int64
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return nil, service.ErrInvalidInput
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func parseList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func attachment(c *gin.Context, contentType, fileName string, data []byte) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, contentType, data)
}

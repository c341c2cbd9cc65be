package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/ppl-catering/internal/model"
)

func (h *Handler) listThirdParties(c *gin.Context) {
	rows, err := h.catalog.ListThirdParties(c.Request.Context(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) listZones(c *gin.Context) {
	rows, err := h.catalog.ListZones(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) listContractZones(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rows, err := h.catalog.ListContractZones(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) listContractUnits(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	zoneIDs, err := parseIDList(c.QueryArray("zone_id"))
	if err != nil {
		h.badRequest(c, "invalid zone_id")
		return
	}
	rows, err := h.catalog.ListUnits(c.Request.Context(), id, zoneIDs)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) listUnitRecipes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var class *model.ServiceClass
	if raw := strings.TrimSpace(c.Query("clase_servicio")); raw != "" {
		value := model.ServiceClass(strings.ToUpper(raw))
		class = &value
	}
	rows, err := h.catalog.ListRecipes(c.Request.Context(), id, class)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/ppl-catering/internal/assignment"
	"github.com/nurpe/ppl-catering/internal/grouptable"
)

type saveAssignmentsRequest struct {
	Groups []assignment.Group `json:"grupos" binding:"required"`
}

func (h *Handler) listUnitAssignments(c *gin.Context) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	unitID, ok := pathID(c, "unit_id")
	if !ok {
		return
	}
	rows, err := h.assignments.ListByUnit(c.Request.Context(), contractID, unitID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// assignmentTree serves the grouped recipe catalog. group_by, selected and
// expanded accept comma separated or repeated values.
func (h *Handler) assignmentTree(c *gin.Context) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	mode, err := grouptable.ParseKeyMode(c.Query("key_mode"))
	if err != nil {
		h.badRequest(c, "invalid key_mode")
		return
	}
	selected, err := parseIDList(c.QueryArray("selected"))
	if err != nil {
		h.badRequest(c, "invalid selected")
		return
	}

	view, err := h.assignments.Tree(
		c.Request.Context(),
		contractID,
		parseList(c.QueryArray("group_by")),
		selected,
		mode,
		c.QueryArray("expanded"),
	)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) saveAssignments(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req saveAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	result, err := h.assignments.Save(c.Request.Context(), contractID, req.Groups, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createDraftRequest struct {
	ContractID int64 `json:"id_contrato" binding:"required"`
}

type selectRecipeRequest struct {
	RelationID int64 `json:"id_producto_unidad" binding:"required"`
}

type toggleGroupRequest struct {
	GroupBy []string `json:"group_by"`
	Path    []string `json:"path" binding:"required"`
	Checked bool     `json:"checked"`
}

type assignUnitsRequest struct {
	UnitIDs []int64 `json:"unidades" binding:"required"`
}

func draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) createDraft(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req createDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	draft, err := h.assignments.CreateDraft(c.Request.Context(), req.ContractID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft.View())
}

func (h *Handler) getDraft(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}
	draft, err := h.assignments.GetDraft(id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft.View())
}

func (h *Handler) discardDraft(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}
	if err := h.assignments.DiscardDraft(id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) selectRecipe(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}
	var req selectRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	result, err := h.assignments.SelectRecipe(c.Request.Context(), id, req.RelationID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) deselectRecipe(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}
	relationID, ok := pathID(c, "relation_id")
	if !ok {
		return
	}
	result, err := h.assignments.DeselectRecipe(id, relationID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) toggleDraftGroup(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}
	var req toggleGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	result, err := h.assignments.ToggleGroup(c.Request.Context(), id, req.GroupBy, req.Path, req.Checked, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) assignUnits(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}
	var req assignUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	result, err := h.assignments.AssignUnits(c.Request.Context(), id, req.UnitIDs, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) removeDraftUnit(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}
	unitID, ok := pathID(c, "unit_id")
	if !ok {
		return
	}
	result, err := h.assignments.RemoveUnit(c.Request.Context(), id, unitID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) saveDraft(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}
	result, err := h.assignments.SaveDraft(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/ppl-catering/internal/model"
	"github.com/nurpe/ppl-catering/internal/service"
)

type contractRequest struct {
	Number        string  `json:"no_contrato" binding:"required"`
	ThirdPartyID  int64   `json:"id_tercero" binding:"required"`
	StartDate     string  `json:"fecha_inicial" binding:"required"`
	EndDate       string  `json:"fecha_final" binding:"required"`
	ExecutionDate string  `json:"fecha_ejecucion"`
	PPL           int     `json:"no_ppl"`
	ServiceCount  int     `json:"no_servicios"`
	CycleCount    int     `json:"no_ciclos"`
	Value         float64 `json:"valor"`
	Clauses       string  `json:"clausulas"`
	ZoneIDs       []int64 `json:"zonas"`
}

type statusRequest struct {
	Target string `json:"target" binding:"required"`
}

func (r contractRequest) input(principal model.Principal) (service.ContractInput, string) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return service.ContractInput{}, "invalid fecha_inicial"
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return service.ContractInput{}, "invalid fecha_final"
	}
	var execution *time.Time
	if strings.TrimSpace(r.ExecutionDate) != "" {
		parsed, err := parseDate(r.ExecutionDate)
		if err != nil {
			return service.ContractInput{}, "invalid fecha_ejecucion"
		}
		execution = &parsed
	}
	return service.ContractInput{
		Number:        r.Number,
		ThirdPartyID:  r.ThirdPartyID,
		StartDate:     start,
		EndDate:       end,
		ExecutionDate: execution,
		PPL:           r.PPL,
		ServiceCount:  r.ServiceCount,
		CycleCount:    r.CycleCount,
		Value:         r.Value,
		Clauses:       r.Clauses,
		ZoneIDs:       r.ZoneIDs,
		Principal:     principal,
	}, ""
}

func (h *Handler) listContracts(c *gin.Context) {
	filter := model.ContractFilter{Search: strings.TrimSpace(c.Query("q"))}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := model.ContractStatus(strings.ToUpper(raw))
		filter.Status = &status
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			h.badRequest(c, "invalid page")
			return
		}
		filter.Page = page
	}
	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			h.badRequest(c, "invalid page_size")
			return
		}
		filter.PageSize = size
	}

	page, err := h.contracts.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	contract, err := h.contracts.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) createContract(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	input, problem := req.input(principal)
	if problem != "" {
		h.badRequest(c, problem)
		return
	}

	contract, err := h.contracts.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) updateContract(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	input, problem := req.input(principal)
	if problem != "" {
		h.badRequest(c, problem)
		return
	}

	contract, err := h.contracts.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) changeStatus(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	target := model.ContractStatus(strings.ToUpper(strings.TrimSpace(req.Target)))

	contract, err := h.contracts.ChangeStatus(c.Request.Context(), id, target, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) activateContract(c *gin.Context) {
	h.transition(c, h.contracts.Activate)
}

func (h *Handler) inactivateContract(c *gin.Context) {
	h.transition(c, h.contracts.Inactivate)
}

type transitionFunc func(ctx context.Context, id int64, principal model.Principal) (*model.Contract, error)

func (h *Handler) transition(c *gin.Context, fn transitionFunc) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	contract, err := fn(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) deleteContract(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.contracts.Delete(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

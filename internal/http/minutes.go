package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/ppl-catering/internal/model"
	"github.com/nurpe/ppl-catering/internal/service"
)

type minuteRequest struct {
	ZoneID       int64  `json:"id_zona" binding:"required"`
	ProductID    int64  `json:"id_producto" binding:"required"`
	Date         string `json:"fecha" binding:"required"`
	ServiceClass string `json:"clase_servicio" binding:"required"`
}

type minuteQuery struct {
	contractID int64
	zoneID     *int64
	from       time.Time
	to         time.Time
}

func (h *Handler) parseMinuteQuery(c *gin.Context) (minuteQuery, bool) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return minuteQuery{}, false
	}
	q := minuteQuery{contractID: contractID}

	var err error
	if q.from, err = parseOptionalDate(c.Query("from")); err != nil {
		h.badRequest(c, "invalid from")
		return minuteQuery{}, false
	}
	if q.to, err = parseOptionalDate(c.Query("to")); err != nil {
		h.badRequest(c, "invalid to")
		return minuteQuery{}, false
	}
	if raw := strings.TrimSpace(c.Query("zone_id")); raw != "" {
		zoneID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || zoneID <= 0 {
			h.badRequest(c, "invalid zone_id")
			return minuteQuery{}, false
		}
		q.zoneID = &zoneID
	}
	return q, true
}

func (h *Handler) listMinutes(c *gin.Context) {
	q, ok := h.parseMinuteQuery(c)
	if !ok {
		return
	}
	rows, err := h.minutes.List(c.Request.Context(), q.contractID, q.zoneID, q.from, q.to)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) minuteCalendar(c *gin.Context) {
	q, ok := h.parseMinuteQuery(c)
	if !ok {
		return
	}
	days, err := h.minutes.Calendar(c.Request.Context(), q.contractID, q.zoneID, q.from, q.to)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

func (h *Handler) scheduleMinute(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req minuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		h.badRequest(c, "invalid fecha")
		return
	}

	minute, err := h.minutes.Schedule(c.Request.Context(), service.MinuteInput{
		ContractID:   contractID,
		ZoneID:       req.ZoneID,
		ProductID:    req.ProductID,
		Date:         date,
		ServiceClass: model.ServiceClass(strings.ToUpper(strings.TrimSpace(req.ServiceClass))),
		Principal:    principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, minute)
}

package http

import (
	"github.com/gin-gonic/gin"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

func (h *Handler) exportAssignments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, name, err := h.exports.AssignmentsWorkbook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	attachment(c, xlsxContentType, name, data)
}

func (h *Handler) exportContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, name, err := h.exports.ContractSheet(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	attachment(c, pdfContentType, name, data)
}

package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendaja-guias/internal/audit"
	"github.com/BruksfildServices01/agendaja-guias/internal/httperr"
	"github.com/BruksfildServices01/agendaja-guias/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reader audit.Reader
}

func NewAuditLogsHandler(reader audit.Reader) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	unidadeID := c.GetString(middleware.ContextUnidadeID)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Filtros (sempre protegido por unidade)
	// --------------------------------------------------

	q := audit.Query{
		UnidadeID: unidadeID,
		Action:    c.Query("action"),
		Entity:    c.Query("entity"),
		EntityID:  c.Query("entity_id"),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q.From = &from
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			end := to.Add(24 * time.Hour)
			q.To = &end
		}
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	logs, total, err := h.reader.List(c.Request.Context(), q)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}

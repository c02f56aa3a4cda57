package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/httpresp"
	"github.com/felipepalage/agorahora-api/internal/middleware"
	"github.com/felipepalage/agorahora-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	page, pageSize := pageParams(c)

	q := h.db.Model(&models.AuditLog{}).Where("establishment_id = ?", establishmentID)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	var total int64
	q.Count(&total)

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_audit_logs", "Erro ao listar auditoria.")
		return
	}

	httpresp.Page(c, page, pageSize, total, logs)
}

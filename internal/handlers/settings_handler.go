package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/httpresp"
	"github.com/felipepalage/agorahora-api/internal/middleware"
	"github.com/felipepalage/agorahora-api/internal/models"
)

type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

type UpdateSettingsRequest struct {
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Hours       *string `json:"hours,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var settings models.Settings
	if err := h.db.Where("establishment_id = ?", establishmentID).First(&settings).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// sem registro ainda: devolve vazio em vez de 404
			httpresp.OK(c, models.Settings{EstablishmentID: establishmentID})
			return
		}
		httperr.Internal(c, "failed_to_get_settings", "Erro ao buscar configuração.")
		return
	}

	httpresp.OK(c, settings)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var settings models.Settings
	err := h.db.Where("establishment_id = ?", establishmentID).First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.Settings{EstablishmentID: establishmentID}
	} else if err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Erro ao buscar configuração.")
		return
	}

	if req.Phone != nil {
		settings.Phone = *req.Phone
	}
	if req.Address != nil {
		settings.Address = *req.Address
	}
	if req.Hours != nil {
		settings.Hours = *req.Hours
	}
	if req.Description != nil {
		settings.Description = *req.Description
	}

	if err := h.db.Save(&settings).Error; err != nil {
		httperr.Internal(c, "failed_to_update_settings", "Erro ao salvar configuração.")
		return
	}

	httpresp.OK(c, settings)
}

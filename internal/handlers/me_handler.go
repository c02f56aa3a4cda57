package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/middleware"
	"github.com/felipepalage/agorahora-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Establishment").First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Erro ao buscar usuário.")
		return
	}

	c.JSON(http.StatusOK, user)
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/httpresp"
	"github.com/felipepalage/agorahora-api/internal/models"
)

type SpecialtyHandler struct {
	db *gorm.DB
}

func NewSpecialtyHandler(db *gorm.DB) *SpecialtyHandler {
	return &SpecialtyHandler{db: db}
}

type CreateSpecialtyRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *SpecialtyHandler) List(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	dbq := h.db.Model(&models.Specialty{})
	if q != "" {
		dbq = dbq.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var specialties []models.Specialty
	if err := dbq.Order("name ASC").Find(&specialties).Error; err != nil {
		httperr.Internal(c, "failed_to_list_specialties", "Erro ao listar especialidades.")
		return
	}

	httpresp.List(c, specialties)
}

func (h *SpecialtyHandler) Create(c *gin.Context) {
	var req CreateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nome é obrigatório.")
		return
	}

	name := strings.TrimSpace(req.Name)

	var count int64
	h.db.Model(&models.Specialty{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "specialty_already_exists", "Já existe.")
		return
	}

	sp := models.Specialty{Name: name}
	if err := h.db.Create(&sp).Error; err != nil {
		httperr.Internal(c, "failed_to_create_specialty", "Erro ao criar especialidade.")
		return
	}

	c.JSON(http.StatusCreated, sp)
}

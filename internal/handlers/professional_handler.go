package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/httpresp"
	"github.com/felipepalage/agorahora-api/internal/middleware"
	"github.com/felipepalage/agorahora-api/internal/models"
)

type ProfessionalHandler struct {
	db *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{db: db}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
}

type UpdateProfessionalRequest struct {
	Name      *string `json:"name,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

type SetSpecialtiesRequest struct {
	Names []string `json:"names" binding:"required"`
}

// ======================================================
// LIST (com especialidades N:N)
// ======================================================

func (h *ProfessionalHandler) List(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	page, pageSize := pageParams(c)

	q := h.db.Model(&models.Professional{}).
		Where("establishment_id = ?", establishmentID)

	var total int64
	q.Count(&total)

	var pros []models.Professional
	if err := q.
		Preload("Specialties").
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&pros).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.Page(c, page, pageSize, total, pros)
}

// ======================================================
// CREATE
// ======================================================

func (h *ProfessionalHandler) Create(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	pro := models.Professional{
		EstablishmentID: establishmentID,
		Name:            strings.TrimSpace(req.Name),
		Specialty:       strings.TrimSpace(req.Specialty),
		Active:          true,
	}

	if err := h.db.Create(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	c.JSON(http.StatusCreated, pro)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ProfessionalHandler) Update(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&pro).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		pro.Name = strings.TrimSpace(*req.Name)
	}
	if req.Specialty != nil {
		pro.Specialty = strings.TrimSpace(*req.Specialty)
	}
	if req.Active != nil {
		pro.Active = *req.Active
	}

	if err := h.db.Save(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	c.JSON(http.StatusOK, pro)
}

// ======================================================
// SET SPECIALTIES — substitui o conjunto inteiro, criando
// especialidades que ainda não existem
// ======================================================

func (h *ProfessionalHandler) SetSpecialties(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&pro).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var req SetSpecialtiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var specialties []models.Specialty
	for _, raw := range req.Names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		var sp models.Specialty
		if err := h.db.Where("name = ?", name).First(&sp).Error; err != nil {
			sp = models.Specialty{Name: name}
			if err := h.db.Create(&sp).Error; err != nil {
				httperr.Internal(c, "failed_to_create_specialty", "Erro ao criar especialidade.")
				return
			}
		}
		specialties = append(specialties, sp)
	}

	if err := h.db.Model(&pro).Association("Specialties").Replace(specialties); err != nil {
		httperr.Internal(c, "failed_to_set_specialties", "Erro ao vincular especialidades.")
		return
	}

	pro.Specialties = specialties
	c.JSON(http.StatusOK, pro)
}

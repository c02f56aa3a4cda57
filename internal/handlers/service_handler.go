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

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// ======================================================
// LIST (público: só ativos)
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	establishmentID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("establishment_id = ? AND active = true", establishmentID).
		Order("name ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// GET
// ======================================================

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	c.JSON(http.StatusOK, service)
}

// ======================================================
// CREATE (nome único por estabelecimento)
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	name := strings.TrimSpace(req.Name)

	var count int64
	h.db.Model(&models.Service{}).
		Where("establishment_id = ? AND name = ?", establishmentID, name).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "service_already_exists", "Já existe um serviço com esse nome nesse estabelecimento.")
		return
	}

	service := models.Service{
		EstablishmentID: establishmentID,
		Name:            name,
		DurationMin:     req.DurationMin,
		Price:           req.Price,
		Active:          true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao salvar serviço.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ServiceHandler) Update(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 1 {
			httperr.BadRequest(c, "invalid_duration", "Duração deve ser maior que zero.")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "Preço não pode ser negativo.")
			return
		}
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	c.JSON(http.StatusOK, service)
}

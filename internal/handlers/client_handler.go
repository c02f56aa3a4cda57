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
	"github.com/felipepalage/agorahora-api/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// EnsureClientRequest é o único caminho que carrega o tenant no corpo:
// a rota é pública, não existe token para derivar o estabelecimento.
type EnsureClientRequest struct {
	EstablishmentID uint   `json:"establishment_id" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// normalização aplicada em toda escrita: nome sem espaços nas pontas,
// e-mail minúsculo, telefone só dígitos
func normalizeClient(name, email, phone string) (string, string, string) {
	return strings.TrimSpace(name),
		strings.ToLower(strings.TrimSpace(email)),
		validators.OnlyDigits(phone)
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	page, pageSize := pageParams(c)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Client{}).Where("establishment_id = ?", establishmentID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	q.Count(&total)

	var clients []models.Client
	if err := q.
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.Page(c, page, pageSize, total, clients)
}

// ======================================================
// GET
// ======================================================

func (h *ClientHandler) Get(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	c.JSON(http.StatusOK, client)
}

// ======================================================
// CREATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nome é obrigatório.")
		return
	}

	name, email, phone := normalizeClient(req.Name, req.Email, req.Phone)

	client := models.Client{
		EstablishmentID: establishmentID,
		Name:            name,
		Email:           email,
		Phone:           phone,
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ClientHandler) Update(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" {
		client.Phone = validators.OnlyDigits(*req.Phone)
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	c.JSON(http.StatusOK, client)
}

// ======================================================
// DELETE
// ======================================================

func (h *ClientHandler) Delete(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	if err := h.db.Delete(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_client", "Erro ao remover cliente.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cliente removido."})
}

// ======================================================
// ENSURE — busca por e-mail ou telefone; cria se não achar
// ======================================================

func (h *ClientHandler) Ensure(c *gin.Context) {
	var req EnsureClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "EstablishmentId e Nome são obrigatórios.")
		return
	}

	name, email, phone := normalizeClient(req.Name, req.Email, req.Phone)

	if email == "" && phone == "" {
		httperr.BadRequest(c, "missing_identifier", "Informe e-mail ou telefone para identificar o cliente.")
		return
	}

	q := h.db.Where("establishment_id = ?", req.EstablishmentID)
	if email != "" {
		q = q.Where("email = ?", email)
	} else {
		q = q.Where("phone = ?", phone)
	}

	var client models.Client
	err := q.First(&client).Error

	if err == gorm.ErrRecordNotFound {
		client = models.Client{
			EstablishmentID: req.EstablishmentID,
			Name:            name,
			Email:           email,
			Phone:           phone,
		}
		if err := h.db.Create(&client).Error; err != nil {
			httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
			return
		}
	} else if err != nil {
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	c.JSON(http.StatusOK, client)
}

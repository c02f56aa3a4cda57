package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/felipepalage/agorahora-api/internal/cache"
	"github.com/felipepalage/agorahora-api/internal/domain/schedule"
	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/httpresp"
	"github.com/felipepalage/agorahora-api/internal/middleware"
	"github.com/felipepalage/agorahora-api/internal/models"
	"github.com/felipepalage/agorahora-api/internal/storage"
	"github.com/felipepalage/agorahora-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type EstablishmentHandler struct {
	db       *gorm.DB
	cache    *cache.Cache
	uploader *storage.Uploader
}

func NewEstablishmentHandler(db *gorm.DB, c *cache.Cache, up *storage.Uploader) *EstablishmentHandler {
	return &EstablishmentHandler{db: db, cache: c, uploader: up}
}

// chave única: só a página inicial sem filtros é cacheada
const listCacheKey = "establishments:list:default"

// ======================================================
// DTOs
// ======================================================

type EstablishmentView struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	ImageURL  string  `json:"image_url"`
	AvgRating float64 `json:"avg_rating"`
	OpensMin  int     `json:"opens_min"`
	ClosesMin int     `json:"closes_min"`
	Open      bool    `json:"open"`
}

type CreateEstablishmentRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address" binding:"required"`
	ImageURL  string  `json:"image_url"`
	AvgRating float64 `json:"avg_rating"`
	OpensMin  *int    `json:"opens_min"`
	ClosesMin *int    `json:"closes_min"`
	Timezone  string  `json:"timezone"`
}

type UpdateEstablishmentRequest struct {
	Name      *string  `json:"name,omitempty"`
	Address   *string  `json:"address,omitempty"`
	ImageURL  *string  `json:"image_url,omitempty"`
	AvgRating *float64 `json:"avg_rating,omitempty"`
	OpensMin  *int     `json:"opens_min,omitempty"`
	ClosesMin *int     `json:"closes_min,omitempty"`
	Timezone  *string  `json:"timezone,omitempty"`
	Active    *bool    `json:"active,omitempty"`
}

type RatingRequest struct {
	Rating *float64 `json:"rating" binding:"required"`
}

func toView(e models.Establishment) EstablishmentView {
	nowMin := schedule.MinuteOfDay(timezone.NowIn(e.Timezone))
	return EstablishmentView{
		ID:        e.ID,
		Name:      e.Name,
		Address:   e.Address,
		ImageURL:  e.ImageURL,
		AvgRating: e.AvgRating,
		OpensMin:  e.OpensMin,
		ClosesMin: e.ClosesMin,
		Open:      schedule.IsOpenAt(e.OpensMin, e.ClosesMin, nowMin),
	}
}

// ======================================================
// LIST (público)
// ======================================================

func (h *EstablishmentHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	q := strings.TrimSpace(c.Query("q"))
	openOnly := c.Query("open") == "true"
	order := c.Query("order")

	defaultQuery := q == "" && !openOnly && order == "" && page == 1 && pageSize == 20

	if defaultQuery {
		var cached httpresp.PageResponse[EstablishmentView]
		if hit, _ := h.cache.GetJSON(c.Request.Context(), listCacheKey, &cached); hit {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	dbq := h.db.Model(&models.Establishment{}).Where("active = true")

	if q != "" {
		dbq = dbq.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var ests []models.Establishment
	if err := dbq.Order("name ASC").Find(&ests).Error; err != nil {
		httperr.Internal(c, "failed_to_list", "Erro ao listar estabelecimentos.")
		return
	}

	views := make([]EstablishmentView, 0, len(ests))
	for _, e := range ests {
		v := toView(e)
		if openOnly && !v.Open {
			continue
		}
		views = append(views, v)
	}

	// o flag "open" depende do relógio, então ordenação e filtro por
	// abertura acontecem depois da projeção, nunca no SQL
	switch order {
	case "rating":
		sortViews(views, func(a, b EstablishmentView) bool {
			if a.AvgRating != b.AvgRating {
				return a.AvgRating > b.AvgRating
			}
			return a.Name < b.Name
		})
	case "open":
		sortViews(views, func(a, b EstablishmentView) bool {
			if a.Open != b.Open {
				return a.Open
			}
			return a.Name < b.Name
		})
	}

	total := int64(len(views))
	start := (page - 1) * pageSize
	if start > len(views) {
		start = len(views)
	}
	end := start + pageSize
	if end > len(views) {
		end = len(views)
	}
	pageData := views[start:end]

	if defaultQuery {
		resp := httpresp.PageResponse[EstablishmentView]{
			Page: page, PageSize: pageSize, Total: total, Data: pageData,
		}
		_ = h.cache.SetJSON(c.Request.Context(), listCacheKey, resp, cache.DefaultTTL)
	}

	httpresp.Page(c, page, pageSize, total, pageData)
}

func sortViews(v []EstablishmentView, less func(a, b EstablishmentView) bool) {
	// insertion sort: listas pequenas, critério dinâmico
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && less(v[j], v[j-1]); j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}

// ======================================================
// GET (público)
// ======================================================

func (h *EstablishmentHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var est models.Establishment
	if err := h.db.Where("id = ? AND active = true", id).First(&est).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	c.JSON(http.StatusOK, toView(est))
}

// ======================================================
// CREATE
// ======================================================

func (h *EstablishmentHandler) Create(c *gin.Context) {
	var req CreateEstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.AvgRating < 0 || req.AvgRating > 5 {
		httperr.BadRequest(c, "invalid_rating", "Avaliação deve estar entre 0 e 5.")
		return
	}

	est := models.Establishment{
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		ImageURL:  strings.TrimSpace(req.ImageURL),
		AvgRating: req.AvgRating,
		OpensMin:  540,
		ClosesMin: 1080,
		Timezone:  req.Timezone,
		Active:    true,
	}

	if req.OpensMin != nil {
		est.OpensMin = *req.OpensMin
	}
	if req.ClosesMin != nil {
		est.ClosesMin = *req.ClosesMin
	}

	// janela de funcionamento validada antes de tocar o banco
	if err := schedule.ValidateWindow(est.OpensMin, est.ClosesMin); err != nil {
		httperr.BadRequest(c, "invalid_window", "Horário inválido (opens_min/closes_min).")
		return
	}

	if err := h.db.Create(&est).Error; err != nil {
		httperr.Internal(c, "failed_to_create", "Erro ao criar estabelecimento.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusCreated, est)
}

// ======================================================
// UPDATE (parcial)
// ======================================================

func (h *EstablishmentHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	// rotas autenticadas só operam no estabelecimento do token
	if id != c.MustGet(middleware.ContextEstablishmentID).(uint) {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	var est models.Establishment
	if err := h.db.First(&est, id).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	var req UpdateEstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		est.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil && strings.TrimSpace(*req.Address) != "" {
		est.Address = strings.TrimSpace(*req.Address)
	}
	if req.ImageURL != nil && strings.TrimSpace(*req.ImageURL) != "" {
		est.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.AvgRating != nil {
		if *req.AvgRating < 0 || *req.AvgRating > 5 {
			httperr.BadRequest(c, "invalid_rating", "Avaliação deve estar entre 0 e 5.")
			return
		}
		est.AvgRating = *req.AvgRating
	}
	if req.OpensMin != nil {
		est.OpensMin = *req.OpensMin
	}
	if req.ClosesMin != nil {
		est.ClosesMin = *req.ClosesMin
	}
	if req.Timezone != nil && timezone.IsValid(*req.Timezone) {
		est.Timezone = *req.Timezone
	}
	if req.Active != nil {
		est.Active = *req.Active
	}

	// revalida a janela resultante, mesmo que só um lado tenha mudado
	if err := schedule.ValidateWindow(est.OpensMin, est.ClosesMin); err != nil {
		httperr.BadRequest(c, "invalid_window", "Horário inválido (opens_min não pode ser igual a closes_min).")
		return
	}

	if err := h.db.Save(&est).Error; err != nil {
		httperr.Internal(c, "failed_to_update", "Erro ao atualizar estabelecimento.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusOK, est)
}

// ======================================================
// RATING
// ======================================================

func (h *EstablishmentHandler) UpdateRating(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if id != c.MustGet(middleware.ContextEstablishmentID).(uint) {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Rating == nil || *req.Rating < 0 || *req.Rating > 5 {
		httperr.BadRequest(c, "invalid_rating", "Nota deve estar entre 0 e 5.")
		return
	}

	var est models.Establishment
	if err := h.db.First(&est, id).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	est.AvgRating = *req.Rating
	if err := h.db.Save(&est).Error; err != nil {
		httperr.Internal(c, "failed_to_update", "Erro ao atualizar avaliação.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusOK, gin.H{"id": est.ID, "avg_rating": est.AvgRating})
}

// ======================================================
// DELETE
// ======================================================

func (h *EstablishmentHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if id != c.MustGet(middleware.ContextEstablishmentID).(uint) {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	var est models.Establishment
	if err := h.db.First(&est, id).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	if err := h.db.Delete(&est).Error; err != nil {
		httperr.Internal(c, "failed_to_delete", "Erro ao remover estabelecimento.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusOK, gin.H{"message": "Estabelecimento removido."})
}

// ======================================================
// LOGO UPLOAD (normaliza para webp e sobe para o S3)
// ======================================================

const maxLogoBytes = 5_000_000 // 5 MB

func (h *EstablishmentHandler) UploadLogo(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if id != c.MustGet(middleware.ContextEstablishmentID).(uint) {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	var est models.Establishment
	if err := h.db.First(&est, id).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return
	}
	if file.Size == 0 || file.Size > maxLogoBytes {
		httperr.BadRequest(c, "invalid_file_size", "Arquivo vazio ou acima de 5MB.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler arquivo.")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxLogoBytes))
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler arquivo.")
		return
	}

	normalized, err := storage.NormalizeLogo(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida (PNG ou JPEG).")
		return
	}

	url, err := h.uploader.UploadLogo(c.Request.Context(), est.ID, normalized)
	if err != nil {
		httperr.Internal(c, "failed_to_upload", "Erro ao subir imagem.")
		return
	}

	est.ImageURL = url
	if err := h.db.Save(&est).Error; err != nil {
		httperr.Internal(c, "failed_to_update", "Erro ao gravar URL da imagem.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

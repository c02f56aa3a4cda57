package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/felipepalage/agorahora-api/internal/domain/appointment"
	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/middleware"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

// linha crua do join agendamento × serviço
type reportRow struct {
	Status      string
	Price       float64
	ServiceName string
	DurationMin int
}

type topService struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

// ======================================================
// RESUMO DO PERÍODO
// ======================================================

func (h *ReportHandler) Summary(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	ini, fim, ok := parsePeriod(c, time.Local)
	if !ok || !fim.After(ini) {
		httperr.BadRequest(c, "invalid_params", "Parâmetros inválidos.")
		return
	}

	var rows []reportRow
	if err := h.db.
		Table("appointments").
		Select("appointments.status, services.price, services.name AS service_name, services.duration_min").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where(
			"appointments.establishment_id = ? AND appointments.start_time >= ? AND appointments.start_time < ?",
			establishmentID, ini, fim,
		).
		Scan(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_build_report", "Erro ao montar relatório.")
		return
	}

	var pending, confirmed, cancelled, completed int
	var revenue float64
	var totalMinutes int
	byService := map[string]int{}

	for _, r := range rows {
		switch domain.Status(r.Status) {
		case domain.StatusPending:
			pending++
		case domain.StatusConfirmed:
			confirmed++
		case domain.StatusCancelled:
			cancelled++
		case domain.StatusCompleted:
			completed++
		}

		// receita estimada: só confirmados e concluídos contam
		if r.Status == string(domain.StatusConfirmed) || r.Status == string(domain.StatusCompleted) {
			revenue += r.Price
		}

		if r.Status != string(domain.StatusCancelled) {
			totalMinutes += r.DurationMin
		}

		byService[r.ServiceName]++
	}

	top := make([]topService, 0, len(byService))
	for name, count := range byService {
		top = append(top, topService{Service: name, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Service < top[j].Service
	})
	if len(top) > 5 {
		top = top[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"period":            gin.H{"ini": ini, "fim": fim},
		"total":             len(rows),
		"pending":           pending,
		"confirmed":         confirmed,
		"cancelled":         cancelled,
		"completed":         completed,
		"estimated_revenue": revenue,
		"total_minutes":     totalMinutes,
		"top_services":      top,
	})
}

// ======================================================
// POR PROFISSIONAL
// ======================================================

type professionalReportRow struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ServiceName string    `json:"service_name"`
	Price       float64   `json:"price"`
	ClientName  string    `json:"client_name"`
}

func (h *ReportHandler) ByProfessional(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	professionalID, err := strconv.ParseUint(c.Query("professional_id"), 10, 64)
	if err != nil || professionalID == 0 {
		httperr.BadRequest(c, "invalid_params", "Parâmetros inválidos.")
		return
	}

	ini, fim, ok := parsePeriod(c, time.Local)
	if !ok || !fim.After(ini) {
		httperr.BadRequest(c, "invalid_params", "Parâmetros inválidos.")
		return
	}

	var rows []professionalReportRow
	if err := h.db.
		Table("appointments").
		Select(`appointments.id, appointments.start_time, appointments.end_time,
                appointments.status, services.name AS service_name, services.price,
                clients.name AS client_name`).
		Joins("JOIN services ON services.id = appointments.service_id").
		Joins("JOIN clients ON clients.id = appointments.client_id").
		Where(
			"appointments.establishment_id = ? AND appointments.professional_id = ? AND appointments.start_time >= ? AND appointments.start_time < ?",
			establishmentID, professionalID, ini, fim,
		).
		Order("appointments.start_time ASC").
		Scan(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_build_report", "Erro ao montar relatório.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows, "total": len(rows)})
}

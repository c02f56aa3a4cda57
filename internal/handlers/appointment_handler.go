package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/felipepalage/agorahora-api/internal/domain/appointment"
	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/middleware"
	ucAppointment "github.com/felipepalage/agorahora-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC   *ucAppointment.CreateAppointment
	getUC      *ucAppointment.GetAppointment
	confirmUC  *ucAppointment.ConfirmAppointment
	cancelUC   *ucAppointment.CancelAppointment
	completeUC *ucAppointment.CompleteAppointment
	listUC     *ucAppointment.ListByProfessional
	availUC    *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	getUC *ucAppointment.GetAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	listUC *ucAppointment.ListByProfessional,
	availUC *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:   createUC,
		getUC:      getUC,
		confirmUC:  confirmUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		listUC:     listUC,
		availUC:    availUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	EstablishmentID uint      `json:"establishment_id" binding:"required"`
	ClientID        uint      `json:"client_id" binding:"required"`
	ProfessionalID  uint      `json:"professional_id" binding:"required"`
	ServiceID       uint      `json:"service_id" binding:"required"`
	Start           time.Time `json:"start" binding:"required"`
	Notes           string    `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

// mapCreateErrors traduz os códigos de negócio da criação para HTTP.
// Conflito nunca expõe detalhe do agendamento que já ocupa o horário.
func mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_service"):
		httperr.BadRequest(c, "invalid_service", "Serviço inválido.")
	case httperr.IsBusiness(err, "invalid_professional"):
		httperr.BadRequest(c, "invalid_professional", "Profissional inválido.")
	case httperr.IsBusiness(err, "invalid_client"):
		httperr.BadRequest(c, "invalid_client", "Cliente inválido.")
	case httperr.IsBusiness(err, "invalid_start"):
		httperr.BadRequest(c, "invalid_start", "Data ou hora inválida.")
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.Conflict(c, "time_conflict", "Horário indisponível.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao salvar agendamento.")
	}
}

func mapTransitionErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Agendamento não permite essa transição.")
	default:
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
	}
}

// ======================================================
// CREATE (público — o app do cliente agenda direto)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		EstablishmentID: req.EstablishmentID,
		ClientID:        req.ClientID,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		Start:           req.Start,
		Notes:           req.Notes,
	})
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// PUBLIC CANCEL — escopo de tenant explícito na query
// ======================================================

func (h *AppointmentHandler) PublicCancel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	establishmentID, err := strconv.ParseUint(c.Query("establishment_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "missing_establishment", "EstablishmentId obrigatório.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), uint(establishmentID), id, "")
	if err != nil {
		mapTransitionErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// GET (privado — escopo vem do token)
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), establishmentID, id)
	if err != nil {
		mapTransitionErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// STATE CHANGES (privado — escopo vem do token)
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), establishmentID, id)
	if err != nil {
		mapTransitionErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req) // corpo opcional

	ap, err := h.cancelUC.Execute(c.Request.Context(), establishmentID, id, req.Reason)
	if err != nil {
		mapTransitionErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), establishmentID, id)
	if err != nil {
		mapTransitionErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// LIST BY PROFESSIONAL
// ======================================================

func (h *AppointmentHandler) ListByProfessional(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	professionalID, err := strconv.ParseUint(c.Query("professional_id"), 10, 64)
	if err != nil || professionalID == 0 {
		httperr.BadRequest(c, "invalid_params", "Parâmetros inválidos.")
		return
	}

	// ordem do período é validada no use case
	ini, fim, ok := parsePeriod(c, time.Local)
	if !ok {
		httperr.BadRequest(c, "invalid_params", "Parâmetros inválidos.")
		return
	}

	var status *domain.Status
	if s := c.Query("status"); s != "" {
		st := domain.Status(s)
		switch st {
		case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
			status = &st
		default:
			httperr.BadRequest(c, "invalid_status", "Status inválido.")
			return
		}
	}

	list, err := h.listUC.Execute(c.Request.Context(), establishmentID, uint(professionalID), ini, fim, status)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_period") {
			httperr.BadRequest(c, "invalid_period", "Período inválido.")
			return
		}
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	establishmentID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	professionalID, err1 := strconv.ParseUint(c.Query("professional_id"), 10, 64)
	serviceID, err2 := strconv.ParseUint(c.Query("service_id"), 10, 64)
	dateStr := c.Query("date")
	if err1 != nil || err2 != nil || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Profissional, serviço e data obrigatórios.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		EstablishmentID: establishmentID,
		ProfessionalID:  uint(professionalID),
		ServiceID:       uint(serviceID),
		Date:            date,
	})
	if err != nil {
		if httperr.IsAnyBusiness(err) {
			httperr.BadRequest(c, err.Error(), "Parâmetros inválidos.")
			return
		}
		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
}

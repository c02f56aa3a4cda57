package appointment

import (
	"context"
	"time"

	"github.com/felipepalage/agorahora-api/internal/audit"
	domain "github.com/felipepalage/agorahora-api/internal/domain/appointment"
	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	EstablishmentID uint
	ClientID        uint
	ProfessionalID  uint
	ServiceID       uint

	Start time.Time
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	validator *SchedulingValidator
	audit     *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		validator: NewSchedulingValidator(repo),
		audit:     audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Pré-condições de agendamento (serviço/profissional/cliente)
	// --------------------------------------------------
	service, err := uc.validator.Execute(
		ctx,
		in.EstablishmentID,
		in.ClientID,
		in.ProfessionalID,
		in.ServiceID,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Fim derivado da duração do serviço; nunca vem do chamador
	// --------------------------------------------------
	if in.Start.IsZero() {
		return nil, httperr.ErrBusiness("invalid_start")
	}

	end := in.Start.Add(time.Duration(service.DurationMin) * time.Minute)
	if !end.After(in.Start) {
		return nil, httperr.ErrBusiness("invalid_service")
	}

	// --------------------------------------------------
	// 3. Checagem de conflito + inserção na mesma transação
	// --------------------------------------------------
	ap := &models.Appointment{
		EstablishmentID: in.EstablishmentID,
		ClientID:        in.ClientID,
		ProfessionalID:  in.ProfessionalID,
		ServiceID:       in.ServiceID,
		StartTime:       in.Start,
		EndTime:         end,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateIfSlotFree(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			// backstop do banco contra corrida entre duas criações
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		Action:          "appointment_created",
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}

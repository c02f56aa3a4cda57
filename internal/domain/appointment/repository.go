package appointment

import (
	"context"
	"time"

	"github.com/felipepalage/agorahora-api/internal/models"
)

// Repository é a fronteira de armazenamento do agendamento. Todo escopo
// de tenant é explícito no parâmetro establishmentID de cada chamada.
type Repository interface {
	// -------- Establishment --------
	GetEstablishmentByID(
		ctx context.Context,
		id uint,
	) (*models.Establishment, error)

	// -------- Scheduling Validator lookups --------
	GetActiveService(
		ctx context.Context,
		establishmentID uint,
		serviceID uint,
	) (*models.Service, error)

	GetActiveProfessional(
		ctx context.Context,
		establishmentID uint,
		professionalID uint,
	) (*models.Professional, error)

	GetClient(
		ctx context.Context,
		establishmentID uint,
		clientID uint,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// CreateIfSlotFree executa a checagem de conflito e a inserção na
	// mesma transação, com as linhas sobrepostas travadas FOR UPDATE.
	// Conflito retorna ErrBusiness("time_conflict").
	CreateIfSlotFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		establishmentID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability / listing --------

	// ListActiveForPeriod devolve os agendamentos pending/confirmed do
	// profissional que tocam [start, end), ordenados por início.
	ListActiveForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListForProfessional(
		ctx context.Context,
		establishmentID uint,
		professionalID uint,
		start time.Time,
		end time.Time,
		status *Status,
	) ([]models.Appointment, error)
}

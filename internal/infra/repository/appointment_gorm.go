package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/felipepalage/agorahora-api/internal/domain/appointment"
	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Establishment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetEstablishmentByID(
	ctx context.Context,
	id uint,
) (*models.Establishment, error) {

	var est models.Establishment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&est).Error; err != nil {
		return nil, err
	}
	return &est, nil
}

// --------------------------------------------------
// Scheduling Validator lookups
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveService(
	ctx context.Context,
	establishmentID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ? AND active = true", serviceID, establishmentID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetActiveProfessional(
	ctx context.Context,
	establishmentID uint,
	professionalID uint,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ? AND active = true", professionalID, establishmentID).
		First(&prof).Error; err != nil {
		return nil, err
	}
	return &prof, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	establishmentID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", clientID, establishmentID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateIfSlotFree trava FOR UPDATE os agendamentos ativos sobrepostos
// do profissional e insere na mesma transação, fechando a corrida entre
// duas criações concorrentes. A constraint de exclusão do Postgres
// (ver internal/db) fica de backstop.
func (r *AppointmentGormRepository) CreateIfSlotFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"professional_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.ProfessionalID,
				domain.ActiveStatuses,
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	establishmentID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", appointmentID, establishmentID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability / listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForPeriod(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"professional_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			professionalID,
			domain.ActiveStatuses,
			end,
			start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForProfessional(
	ctx context.Context,
	establishmentID uint,
	professionalID uint,
	start time.Time,
	end time.Time,
	status *domain.Status,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		Where(
			"establishment_id = ? AND professional_id = ? AND start_time < ? AND end_time > ?",
			establishmentID,
			professionalID,
			end,
			start,
		)

	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)

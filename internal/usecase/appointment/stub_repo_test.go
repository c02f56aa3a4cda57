package appointment

import (
	"context"
	"errors"
	"sort"
	"time"

	domain "github.com/felipepalage/agorahora-api/internal/domain/appointment"
	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/models"
)

var errNotFound = errors.New("registro não encontrado")

// stubRepo implementa domain.Repository em memória para os testes de
// use case. O escopo de tenant é respeitado como no repositório real:
// ids de outro estabelecimento se comportam como inexistentes.
type stubRepo struct {
	establishments map[uint]*models.Establishment
	services       map[uint]*models.Service
	professionals  map[uint]*models.Professional
	clients        map[uint]*models.Client
	appointments   map[uint]*models.Appointment

	nextID uint

	createErr error
	updateErr error
	updated   *models.Appointment
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		establishments: map[uint]*models.Establishment{},
		services:       map[uint]*models.Service{},
		professionals:  map[uint]*models.Professional{},
		clients:        map[uint]*models.Client{},
		appointments:   map[uint]*models.Appointment{},
	}
}

// seed padrão: estabelecimento 1 aberto 09:00–18:00 com serviço de 30
// minutos, um profissional e um cliente.
func seededStubRepo() *stubRepo {
	r := newStubRepo()
	r.establishments[1] = &models.Establishment{
		ID: 1, Name: "Studio Alfa",
		OpensMin: 540, ClosesMin: 1080,
		Timezone: "UTC", Active: true,
	}
	r.services[1] = &models.Service{
		ID: 1, EstablishmentID: 1,
		Name: "Corte", DurationMin: 30, Price: 50, Active: true,
	}
	r.professionals[1] = &models.Professional{
		ID: 1, EstablishmentID: 1, Name: "João", Active: true,
	}
	r.clients[1] = &models.Client{
		ID: 1, EstablishmentID: 1, Name: "Maria",
	}
	return r
}

func (r *stubRepo) GetEstablishmentByID(_ context.Context, id uint) (*models.Establishment, error) {
	if e, ok := r.establishments[id]; ok {
		return e, nil
	}
	return nil, errNotFound
}

func (r *stubRepo) GetActiveService(_ context.Context, establishmentID, serviceID uint) (*models.Service, error) {
	s, ok := r.services[serviceID]
	if !ok || s.EstablishmentID != establishmentID || !s.Active {
		return nil, errNotFound
	}
	return s, nil
}

func (r *stubRepo) GetActiveProfessional(_ context.Context, establishmentID, professionalID uint) (*models.Professional, error) {
	p, ok := r.professionals[professionalID]
	if !ok || p.EstablishmentID != establishmentID || !p.Active {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubRepo) GetClient(_ context.Context, establishmentID, clientID uint) (*models.Client, error) {
	c, ok := r.clients[clientID]
	if !ok || c.EstablishmentID != establishmentID {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubRepo) CreateIfSlotFree(_ context.Context, ap *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}

	var active []models.Appointment
	for _, ex := range r.appointments {
		if ex.ProfessionalID == ap.ProfessionalID && domain.Status(ex.Status).IsActive() {
			active = append(active, *ex)
		}
	}
	if domain.HasConflict(ap.StartTime, ap.EndTime, active) {
		return httperr.ErrBusiness("time_conflict")
	}

	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *stubRepo) GetAppointment(_ context.Context, establishmentID, appointmentID uint) (*models.Appointment, error) {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.EstablishmentID != establishmentID {
		return nil, errNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *stubRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	r.updated = &cp
	return nil
}

func (r *stubRepo) ListActiveForPeriod(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProfessionalID != professionalID || !domain.Status(ap.Status).IsActive() {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *stubRepo) ListForProfessional(_ context.Context, establishmentID, professionalID uint, start, end time.Time, status *domain.Status) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.EstablishmentID != establishmentID || ap.ProfessionalID != professionalID {
			continue
		}
		if status != nil && ap.Status != string(*status) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

var _ domain.Repository = (*stubRepo)(nil)

package appointment

import (
	"context"

	"github.com/felipepalage/agorahora-api/internal/audit"
	domain "github.com/felipepalage/agorahora-api/internal/domain/appointment"
	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/models"
	"github.com/felipepalage/agorahora-api/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	establishmentID uint,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, establishmentID, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// o estabelecimento só entra aqui pelo fuso do carimbo de cancelamento
	est, err := uc.repo.GetEstablishmentByID(ctx, establishmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(est.Timezone)
	if err := domain.Cancel(ap, reason, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		Action:          "appointment_cancelled",
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}

package appointment

import (
	"context"
	"time"

	domain "github.com/felipepalage/agorahora-api/internal/domain/appointment"
	"github.com/felipepalage/agorahora-api/internal/dto"
	"github.com/felipepalage/agorahora-api/internal/httperr"
)

type ListByProfessional struct {
	repo domain.Repository
}

func NewListByProfessional(
	repo domain.Repository,
) *ListByProfessional {
	return &ListByProfessional{
		repo: repo,
	}
}

func (uc *ListByProfessional) Execute(
	ctx context.Context,
	establishmentID uint,
	professionalID uint,
	start time.Time,
	end time.Time,
	status *domain.Status,
) ([]dto.AppointmentListDTO, error) {

	if !end.After(start) {
		return nil, httperr.ErrBusiness("invalid_period")
	}

	appointments, err := uc.repo.ListForProfessional(
		ctx,
		establishmentID,
		professionalID,
		start,
		end,
		status,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:               ap.ID,
			StartTime:        ap.StartTime,
			EndTime:          ap.EndTime,
			Status:           ap.Status,
			Notes:            ap.Notes,
			ClientName:       ap.Client.Name,
			ServiceName:      ap.Service.Name,
			ProfessionalName: ap.Professional.Name,
		})
	}

	return out, nil
}

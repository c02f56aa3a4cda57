package appointment

import (
	"context"
	"time"

	domain "github.com/felipepalage/agorahora-api/internal/domain/appointment"
	"github.com/felipepalage/agorahora-api/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute lista os horários livres do profissional num dia, fatiando a
// janela de funcionamento do estabelecimento em blocos do tamanho da
// duração do serviço e descartando os que colidem com agendamentos
// ativos.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	est, err := uc.repo.GetEstablishmentByID(ctx, in.EstablishmentID)
	if err != nil || !est.Active {
		return nil, httperr.ErrBusiness("establishment_not_found")
	}

	service, err := uc.repo.GetActiveService(ctx, in.EstablishmentID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_service")
	}

	loc := in.Date.Location()
	atMinute := func(min int) time.Time {
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			min/60, min%60, 0, 0,
			loc,
		)
	}

	dayStart := atMinute(est.OpensMin)
	dayEnd := atMinute(est.ClosesMin)

	// janela que vira a madrugada: fecha no dia seguinte
	if est.ClosesMin <= est.OpensMin {
		dayEnd = dayEnd.Add(24 * time.Hour)
	}

	appointments, err := uc.repo.ListActiveForPeriod(
		ctx,
		in.ProfessionalID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slotDuration := time.Duration(service.DurationMin) * time.Minute
	var slots []domain.TimeSlot

	apIdx := 0

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		// avança agendamentos que já terminaram antes do slot
		for apIdx < len(appointments) && !appointments[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		if apIdx < len(appointments) {
			ap := appointments[apIdx]
			if domain.Overlaps(ap.StartTime, ap.EndTime, slotStart, slotEnd) {
				conflict = true
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}

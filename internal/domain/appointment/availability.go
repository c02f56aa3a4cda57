package appointment

import (
	"time"

	"github.com/felipepalage/agorahora-api/internal/models"
)

type AvailabilityInput struct {
	EstablishmentID uint
	ProfessionalID  uint
	ServiceID       uint
	Date            time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Overlaps testa sobreposição de intervalos semiabertos [start, end).
// Agendamentos encostados (existing.End == start) não conflitam.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasConflict varre os agendamentos existentes procurando sobreposição
// com o intervalo candidato. O chamador garante que a lista contém só
// agendamentos ativos (pending/confirmed) do mesmo profissional; aqui é
// comparação pura de intervalos, sem acesso a armazenamento.
//
// Varredura linear: a agenda de um único profissional é pequena o
// bastante para dispensar árvore de intervalos.
func HasConflict(candidateStart, candidateEnd time.Time, existing []models.Appointment) bool {
	for _, ap := range existing {
		if Overlaps(ap.StartTime, ap.EndTime, candidateStart, candidateEnd) {
			return true
		}
	}
	return false
}

package appointment

import "github.com/felipepalage/agorahora-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ActiveStatuses são os status que ocupam a agenda do profissional.
// Cancelado e concluído ficam fora do invariante de sobreposição.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ===============================
// Transitions
// ===============================

// CanTransition decide se a mudança de status é permitida. O switch é
// exaustivo sobre o status atual: um status novo obriga a revisitar
// cada transição daqui.
func CanTransition(current, next Status) error {
	switch current {
	case StatusPending:
		switch next {
		case StatusConfirmed, StatusCancelled, StatusCompleted:
			return nil
		}
	case StatusConfirmed:
		switch next {
		case StatusCancelled, StatusCompleted:
			return nil
		}
	case StatusCancelled, StatusCompleted:
		// estados terminais
		return httperr.ErrBusiness("invalid_state")
	}
	return httperr.ErrBusiness("invalid_state")
}

func CanConfirm(current Status) error { return CanTransition(current, StatusConfirmed) }
func CanCancel(current Status) error  { return CanTransition(current, StatusCancelled) }
func CanComplete(current Status) error { return CanTransition(current, StatusCompleted) }

// InitialStatus é o único status de criação.
func InitialStatus() Status {
	return StatusPending
}

package appointment

import (
	"time"

	"github.com/felipepalage/agorahora-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

const (
	DefaultCancelReason = "Cancelado pelo cliente"
	noteDelimiter       = " | "
)

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

// Cancel aplica a transição para cancelado e anexa o motivo à
// observação, preservando o conteúdo anterior.
func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	if reason == "" {
		reason = DefaultCancelReason
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now

	if ap.Notes == "" {
		ap.Notes = reason
	} else {
		ap.Notes = ap.Notes + noteDelimiter + reason
	}
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

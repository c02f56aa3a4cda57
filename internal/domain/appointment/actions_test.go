package appointment

import (
	"testing"
	"time"

	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/models"
)

func TestConfirm(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}
	if err := Confirm(ap); err != nil {
		t.Fatalf("Confirm em pending: %v", err)
	}
	if ap.Status != string(StatusConfirmed) {
		t.Errorf("status = %s, want confirmed", ap.Status)
	}

	// confirmar de novo é transição inválida
	if err := Confirm(ap); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("Confirm em confirmed = %v, want invalid_state", err)
	}
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("motivo padrão em notas vazias", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}
		if err := Cancel(ap, "", now); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if ap.Status != string(StatusCancelled) {
			t.Errorf("status = %s, want cancelled", ap.Status)
		}
		if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
			t.Errorf("CancelledAt = %v, want %v", ap.CancelledAt, now)
		}
		if ap.Notes != DefaultCancelReason {
			t.Errorf("Notes = %q, want %q", ap.Notes, DefaultCancelReason)
		}
	})

	t.Run("motivo anexado preservando notas", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusConfirmed), Notes: "Cliente prefere manhã"}
		if err := Cancel(ap, "Imprevisto", now); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		want := "Cliente prefere manhã | Imprevisto"
		if ap.Notes != want {
			t.Errorf("Notes = %q, want %q", ap.Notes, want)
		}
	})

	t.Run("cancelar cancelado é inválido", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCancelled)}
		if err := Cancel(ap, "", now); !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("Cancel em cancelled = %v, want invalid_state", err)
		}
	})

	t.Run("cancelar concluído é inválido", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCompleted)}
		if err := Cancel(ap, "", now); !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("Cancel em completed = %v, want invalid_state", err)
		}
	})
}

func TestComplete(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	for _, from := range []Status{StatusPending, StatusConfirmed} {
		ap := &models.Appointment{Status: string(from)}
		if err := Complete(ap, now); err != nil {
			t.Fatalf("Complete em %s: %v", from, err)
		}
		if ap.Status != string(StatusCompleted) {
			t.Errorf("status = %s, want completed", ap.Status)
		}
		if ap.CompletedAt == nil || !ap.CompletedAt.Equal(now) {
			t.Errorf("CompletedAt = %v, want %v", ap.CompletedAt, now)
		}
	}

	ap := &models.Appointment{Status: string(StatusCancelled)}
	if err := Complete(ap, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("Complete em cancelled = %v, want invalid_state", err)
	}
}

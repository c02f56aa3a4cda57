package appointment

import (
	"context"
	"strings"
	"testing"

	domain "github.com/felipepalage/agorahora-api/internal/domain/appointment"
	"github.com/felipepalage/agorahora-api/internal/httperr"
)

// cria um agendamento pending no repo semeado e devolve o id
func createPending(t *testing.T, repo *stubRepo) uint {
	t.Helper()
	ap, err := NewCreateAppointment(repo, nil).Execute(context.Background(), baseInput())
	if err != nil {
		t.Fatalf("criação inicial: %v", err)
	}
	return ap.ID
}

func TestGetAppointment(t *testing.T) {
	repo := seededStubRepo()
	id := createPending(t, repo)
	ctx := context.Background()
	uc := NewGetAppointment(repo)

	ap, err := uc.Execute(ctx, 1, id)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ap.ID != id || ap.Status != string(domain.StatusPending) {
		t.Errorf("ap = %+v, want id %d pending", ap, id)
	}

	if _, err := uc.Execute(ctx, 2, id); !httperr.IsBusiness(err, "appointment_not_found") {
		t.Errorf("Execute com outro tenant = %v, want appointment_not_found", err)
	}
}

func TestConfirmAppointment(t *testing.T) {
	repo := seededStubRepo()
	id := createPending(t, repo)
	ctx := context.Background()
	uc := NewConfirmAppointment(repo, nil)

	ap, err := uc.Execute(ctx, 1, id)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ap.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %s, want confirmed", ap.Status)
	}
	if repo.updated == nil || repo.updated.Status != string(domain.StatusConfirmed) {
		t.Error("transição não persistida")
	}

	// confirmar duas vezes é inválido
	if _, err := uc.Execute(ctx, 1, id); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("segunda confirmação = %v, want invalid_state", err)
	}
}

func TestConfirmAppointmentNotFound(t *testing.T) {
	repo := seededStubRepo()
	id := createPending(t, repo)

	// id de outro estabelecimento se comporta como inexistente
	_, err := NewConfirmAppointment(repo, nil).Execute(context.Background(), 2, id)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Errorf("Execute = %v, want appointment_not_found", err)
	}
}

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("pending com motivo", func(t *testing.T) {
		repo := seededStubRepo()
		id := createPending(t, repo)

		ap, err := NewCancelAppointment(repo, nil).Execute(ctx, 1, id, "Imprevisto")
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if ap.Status != string(domain.StatusCancelled) {
			t.Errorf("status = %s, want cancelled", ap.Status)
		}
		if ap.CancelledAt == nil {
			t.Error("CancelledAt não preenchido")
		}
		if !strings.Contains(ap.Notes, "Imprevisto") {
			t.Errorf("Notes = %q, motivo não registrado", ap.Notes)
		}
	})

	t.Run("motivo vazio usa o padrão", func(t *testing.T) {
		repo := seededStubRepo()
		id := createPending(t, repo)

		ap, err := NewCancelAppointment(repo, nil).Execute(ctx, 1, id, "")
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if ap.Notes != domain.DefaultCancelReason {
			t.Errorf("Notes = %q, want %q", ap.Notes, domain.DefaultCancelReason)
		}
	})

	t.Run("estabelecimento inativo não bloqueia o cancelamento", func(t *testing.T) {
		repo := seededStubRepo()
		id := createPending(t, repo)
		repo.establishments[1].Active = false

		ap, err := NewCancelAppointment(repo, nil).Execute(ctx, 1, id, "")
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if ap.Status != string(domain.StatusCancelled) {
			t.Errorf("status = %s, want cancelled", ap.Status)
		}
	})

	t.Run("cancelar cancelado", func(t *testing.T) {
		repo := seededStubRepo()
		id := createPending(t, repo)
		uc := NewCancelAppointment(repo, nil)

		if _, err := uc.Execute(ctx, 1, id, ""); err != nil {
			t.Fatalf("primeiro cancelamento: %v", err)
		}
		if _, err := uc.Execute(ctx, 1, id, ""); !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("segundo cancelamento = %v, want invalid_state", err)
		}
	})
}

func TestCompleteAppointment(t *testing.T) {
	repo := seededStubRepo()
	id := createPending(t, repo)
	ctx := context.Background()

	ap, err := NewCompleteAppointment(repo, nil).Execute(ctx, 1, id)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ap.Status != string(domain.StatusCompleted) {
		t.Errorf("status = %s, want completed", ap.Status)
	}
	if ap.CompletedAt == nil {
		t.Error("CompletedAt não preenchido")
	}

	// concluído é terminal: cancelar depois é inválido
	if _, err := NewCancelAppointment(repo, nil).Execute(ctx, 1, id, ""); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("cancelar concluído = %v, want invalid_state", err)
	}
}

// fluxo completo: criar → confirmar → concluir, e o slot liberado por
// cancelamento volta a aceitar criação
func TestAppointmentLifecycle(t *testing.T) {
	repo := seededStubRepo()
	ctx := context.Background()
	id := createPending(t, repo)

	if _, err := NewConfirmAppointment(repo, nil).Execute(ctx, 1, id); err != nil {
		t.Fatalf("confirmar: %v", err)
	}
	if _, err := NewCompleteAppointment(repo, nil).Execute(ctx, 1, id); err != nil {
		t.Fatalf("concluir: %v", err)
	}

	// concluído não ocupa mais a agenda
	if _, err := NewCreateAppointment(repo, nil).Execute(ctx, baseInput()); err != nil {
		t.Fatalf("recriar no slot liberado: %v", err)
	}
}

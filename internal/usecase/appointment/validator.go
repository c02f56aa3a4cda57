package appointment

import (
	"context"

	domain "github.com/felipepalage/agorahora-api/internal/domain/appointment"
	"github.com/felipepalage/agorahora-api/internal/httperr"
	"github.com/felipepalage/agorahora-api/internal/models"
)

// ======================================================
// SCHEDULING VALIDATOR
// ======================================================

// SchedulingValidator é o portão de pré-condições da criação: serviço,
// profissional e cliente precisam existir, estar ativos e pertencer ao
// estabelecimento. Checa em ordem, parando no primeiro erro. Nenhuma
// aritmética de intervalo acontece aqui.
type SchedulingValidator struct {
	repo domain.Repository
}

func NewSchedulingValidator(repo domain.Repository) *SchedulingValidator {
	return &SchedulingValidator{repo: repo}
}

func (v *SchedulingValidator) Execute(
	ctx context.Context,
	establishmentID uint,
	clientID uint,
	professionalID uint,
	serviceID uint,
) (*models.Service, error) {

	service, err := v.repo.GetActiveService(ctx, establishmentID, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_service")
	}

	if _, err := v.repo.GetActiveProfessional(ctx, establishmentID, professionalID); err != nil {
		return nil, httperr.ErrBusiness("invalid_professional")
	}

	if _, err := v.repo.GetClient(ctx, establishmentID, clientID); err != nil {
		return nil, httperr.ErrBusiness("invalid_client")
	}

	return service, nil
}

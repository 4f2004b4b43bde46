package guia

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/agendaja-guias/internal/audit"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/followup"
)

type ReverseOrder struct {
	cascade orderCascade
}

func NewReverseOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
	recorder followup.Recorder,
	log zerolog.Logger,
) *ReverseOrder {
	return &ReverseOrder{
		cascade: newOrderCascade(repo, audit, recorder, log),
	}
}

// Execute estorna as guias pagas do pedido. Estorno é sempre decisão da unidade;
// só paga -> estornada é permitido na tabela dela.
func (uc *ReverseOrder) Execute(
	ctx context.Context,
	guideID string,
) (domain.CascadeResult, error) {
	return uc.cascade.run(ctx, reverseOp, guideID, domain.ActorUnidade, cascadeScope{})
}

package guia

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/agendaja-guias/internal/audit"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/followup"
	"github.com/BruksfildServices01/agendaja-guias/internal/timezone"
)

type CancelOrder struct {
	cascade orderCascade
}

func NewCancelOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
	recorder followup.Recorder,
	log zerolog.Logger,
) *CancelOrder {
	return &CancelOrder{
		cascade: newOrderCascade(repo, audit, recorder, log),
	}
}

// Execute cancela todas as guias canceláveis do pedido da guia informada.
// Guias pagas, expiradas ou já encerradas ficam como estão; a venda passa a cancelada.
func (uc *CancelOrder) Execute(
	ctx context.Context,
	guideID string,
	actor domain.Actor,
	opts ...CascadeOption,
) (domain.CascadeResult, error) {

	if _, ok := domain.ParseActor(string(actor)); !ok {
		return domain.CascadeResult{}, domain.ErrInvalidActor
	}
	return uc.cascade.run(ctx, cancelOp, guideID, actor, newCascadeScope(opts))
}

func newOrderCascade(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	recorder followup.Recorder,
	log zerolog.Logger,
) orderCascade {
	if recorder == nil {
		recorder = followup.Noop{}
	}
	return orderCascade{
		repo:     repo,
		siblings: NewFindSiblingGuides(repo),
		updater:  NewUpdateGuideStatus(repo, dispatcher),
		audit:    dispatcher,
		followup: recorder,
		log:      log,
		clock:    timezone.Now,
	}
}

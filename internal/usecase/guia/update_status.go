package guia

import (
	"context"

	"github.com/BruksfildServices01/agendaja-guias/internal/audit"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
	"github.com/BruksfildServices01/agendaja-guias/internal/timezone"
)

type UpdateGuideStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewUpdateGuideStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateGuideStatus {
	return &UpdateGuideStatus{
		repo:  repo,
		audit: audit,
		clock: timezone.Now,
	}
}

func (uc *UpdateGuideStatus) Execute(
	ctx context.Context,
	guideID string,
	newStatus domain.Status,
	actor domain.Actor,
) (*models.Guia, error) {

	if _, ok := domain.ParseActor(string(actor)); !ok {
		return nil, domain.ErrInvalidActor
	}
	if _, ok := domain.ParseStatus(string(newStatus)); !ok {
		return nil, domain.ErrInvalidStatus
	}

	g, err := uc.repo.GetGuide(ctx, guideID)
	if err != nil {
		return nil, err
	}

	from := g.Status
	if err := domain.Transition(g, newStatus, actor, uc.clock()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateGuideStatus(ctx, g); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UnidadeID: g.UnidadeID,
		UserID:    audit.UserFrom(ctx),
		Actor:     string(actor),
		Action:    "guide_status_changed",
		Entity:    "guia",
		EntityID:  g.ID,
		Metadata: map[string]string{
			"from": from,
			"to":   g.Status,
		},
	})

	return g, nil
}

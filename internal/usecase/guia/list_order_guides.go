package guia

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/agendaja-guias/internal/cache"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/dto"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
	"github.com/BruksfildServices01/agendaja-guias/internal/timezone"
)

// ListOrderGuides é a leitura do pedido inteiro a partir de qualquer guia dele.
type ListOrderGuides struct {
	repo      domain.Repository
	siblings  *FindSiblingGuides
	cache     readCache
	alertDays int
	clock     timezone.Clock
}

func NewListOrderGuides(
	repo domain.Repository,
	store cache.Store,
	ttl time.Duration,
	alertDays int,
	log zerolog.Logger,
) *ListOrderGuides {
	return &ListOrderGuides{
		repo:      repo,
		siblings:  NewFindSiblingGuides(repo),
		cache:     readCache{store: store, ttl: ttl, log: log},
		alertDays: alertDays,
		clock:     timezone.Now,
	}
}

// Execute lê o pedido da guia. Com prestadorID informado, só as guias dele aparecem;
// o cache guarda o pedido inteiro, compartilhado com a unidade.
func (uc *ListOrderGuides) Execute(
	ctx context.Context,
	guideID string,
	unidadeID string,
	prestadorID string,
) ([]dto.GuiaDTO, error) {

	origin, err := uc.repo.GetGuide(ctx, guideID)
	if err != nil {
		return nil, err
	}
	if unidadeID != "" && origin.UnidadeID != unidadeID {
		return nil, domain.ErrGuideNotFound
	}
	if prestadorID != "" && origin.PrestadorID != prestadorID {
		return nil, domain.ErrGuideNotFound
	}

	if origin.AgendamentoID == "" {
		return toView([]models.Guia{*origin}, uc.clock(), uc.alertDays), nil
	}

	stored, err := uc.cache.load(ctx, cache.OrderKey(origin.AgendamentoID), func() ([]models.Guia, error) {
		return uc.siblings.Execute(ctx, guideID)
	})
	if err != nil {
		return nil, err
	}
	if prestadorID != "" {
		stored = ownedBy(stored, prestadorID)
	}
	return toView(stored, uc.clock(), uc.alertDays), nil
}

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

type GetGuide struct {
	repo      domain.Repository
	cache     readCache
	alertDays int
	clock     timezone.Clock
}

func NewGetGuide(
	repo domain.Repository,
	store cache.Store,
	ttl time.Duration,
	alertDays int,
	log zerolog.Logger,
) *GetGuide {
	return &GetGuide{
		repo:      repo,
		cache:     readCache{store: store, ttl: ttl, log: log},
		alertDays: alertDays,
		clock:     timezone.Now,
	}
}

// Execute esconde guias de outra unidade como não encontradas.
// unidadeID vazio desliga o escopo (uso interno).
func (uc *GetGuide) Execute(
	ctx context.Context,
	guideID string,
	unidadeID string,
) (dto.GuiaDTO, error) {

	stored, err := uc.cache.load(ctx, cache.GuideKey(guideID), func() ([]models.Guia, error) {
		g, err := uc.repo.GetGuide(ctx, guideID)
		if err != nil {
			return nil, err
		}
		return []models.Guia{*g}, nil
	})
	if err != nil {
		return dto.GuiaDTO{}, err
	}
	if len(stored) != 1 {
		return dto.GuiaDTO{}, domain.ErrGuideNotFound
	}
	if unidadeID != "" && stored[0].UnidadeID != unidadeID {
		return dto.GuiaDTO{}, domain.ErrGuideNotFound
	}

	return toView(stored, uc.clock(), uc.alertDays)[0], nil
}

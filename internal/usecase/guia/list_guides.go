package guia

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/agendaja-guias/internal/cache"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/dto"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
	"github.com/BruksfildServices01/agendaja-guias/internal/timezone"
)

type ListGuides struct {
	repo      domain.Repository
	cache     readCache
	alertDays int
	clock     timezone.Clock
}

func NewListGuides(
	repo domain.Repository,
	store cache.Store,
	ttl time.Duration,
	alertDays int,
	log zerolog.Logger,
) *ListGuides {
	return &ListGuides{
		repo:      repo,
		cache:     readCache{store: store, ttl: ttl, log: log},
		alertDays: alertDays,
		clock:     timezone.Now,
	}
}

// Execute filtra pelo status exibido. Pedir "emitida" exclui as que já venceram;
// pedir "expirada" inclui as emitidas vencidas que ainda não foram persistidas.
func (uc *ListGuides) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]dto.GuiaDTO, error) {

	requested := filter.Statuses
	for _, st := range requested {
		if _, ok := domain.ParseStatus(string(st)); !ok {
			return nil, domain.ErrInvalidStatus
		}
	}

	query := filter
	query.Statuses = storedStatuses(requested)

	key := cache.GuideListKey(map[string]string{
		"unidade_id":     query.UnidadeID,
		"prestador_id":   query.PrestadorID,
		"agendamento_id": query.AgendamentoID,
		"status":         joinStatuses(query.Statuses),
	})

	stored, err := uc.cache.load(ctx, key, func() ([]models.Guia, error) {
		return uc.repo.ListGuides(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	view := toView(stored, uc.clock(), uc.alertDays)
	if len(requested) == 0 {
		return view, nil
	}

	out := make([]dto.GuiaDTO, 0, len(view))
	for _, g := range view {
		if containsStatus(requested, domain.Status(g.Status)) {
			out = append(out, g)
		}
	}
	return out, nil
}

// storedStatuses amplia o filtro para os status armazenados que podem produzir
// os status exibidos pedidos.
func storedStatuses(requested []domain.Status) []domain.Status {
	if len(requested) == 0 {
		return nil
	}

	out := make([]domain.Status, 0, len(requested)+1)
	for _, st := range requested {
		if !containsStatus(out, st) {
			out = append(out, st)
		}
	}
	if containsStatus(out, domain.StatusExpirada) && !containsStatus(out, domain.StatusEmitida) {
		out = append(out, domain.StatusEmitida)
	}
	return out
}

func containsStatus(list []domain.Status, st domain.Status) bool {
	for _, s := range list {
		if s == st {
			return true
		}
	}
	return false
}

func joinStatuses(list []domain.Status) string {
	parts := make([]string, 0, len(list))
	for _, st := range list {
		parts = append(parts, string(st))
	}
	return strings.Join(parts, ",")
}

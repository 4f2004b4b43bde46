package guia

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/agendaja-guias/internal/audit"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/timezone"
)

type ExpirationResult struct {
	Expired  int
	Skipped  int
	GuideIDs []string
	SaleIDs  []string
}

// PersistExpirations grava expirada nas guias emitidas com janela vencida.
// A leitura já mostra expirada sem isso; aqui é só para relatórios e consultas SQL.
type PersistExpirations struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   zerolog.Logger
	clock timezone.Clock
}

func NewPersistExpirations(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *PersistExpirations {
	return &PersistExpirations{
		repo:  repo,
		audit: audit,
		log:   log,
		clock: timezone.Now,
	}
}

func (uc *PersistExpirations) Execute(ctx context.Context) (ExpirationResult, error) {
	now := uc.clock()

	candidates, err := uc.repo.ListExpirationCandidates(ctx, now.Add(-domain.ExpirationWindow))
	if err != nil {
		return ExpirationResult{}, err
	}

	var res ExpirationResult
	sales := make(map[string]bool)

	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		g := candidates[i]
		if !domain.Expire(&g, now) {
			res.Skipped++
			continue
		}

		ok, err := uc.repo.MarkExpired(ctx, &g)
		if err != nil {
			uc.log.Warn().Err(err).Str("guia_id", g.ID).Msg("expiration not persisted")
			res.Skipped++
			continue
		}
		if !ok {
			// mudou de status entre a leitura e a escrita
			res.Skipped++
			continue
		}

		res.Expired++
		res.GuideIDs = append(res.GuideIDs, g.ID)
		if g.AgendamentoID != "" && !sales[g.AgendamentoID] {
			sales[g.AgendamentoID] = true
			res.SaleIDs = append(res.SaleIDs, g.AgendamentoID)
		}

		uc.audit.Dispatch(audit.Event{
			UnidadeID: g.UnidadeID,
			Actor:     "sistema",
			Action:    "guide_expired",
			Entity:    "guia",
			EntityID:  g.ID,
		})
	}

	uc.log.Info().
		Int("expired", res.Expired).
		Int("skipped", res.Skipped).
		Msg("expiration pass finished")

	return res, nil
}

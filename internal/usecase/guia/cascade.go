package guia

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/agendaja-guias/internal/audit"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/followup"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
	"github.com/BruksfildServices01/agendaja-guias/internal/timezone"
)

// orderCascade aplica um status a todas as guias elegíveis do pedido, uma a uma,
// e depois grava o status da venda. Falha em uma guia não interrompe as demais.
type orderCascade struct {
	repo     domain.Repository
	siblings *FindSiblingGuides
	updater  *UpdateGuideStatus
	audit    *audit.Dispatcher
	followup followup.Recorder
	log      zerolog.Logger
	clock    timezone.Clock
}

type cascadeOp struct {
	name       string
	action     string
	eligible   func(domain.Status) bool
	target     domain.Status
	saleStatus domain.SaleStatus
}

// CascadeOption restringe o alcance da cascata.
type CascadeOption func(*cascadeScope)

type cascadeScope struct {
	prestadorID string
}

// ForPrestador limita a cascata às guias do prestador. A venda só muda de status
// quando todas as guias do pedido são dele.
func ForPrestador(prestadorID string) CascadeOption {
	return func(s *cascadeScope) {
		s.prestadorID = prestadorID
	}
}

func newCascadeScope(opts []CascadeOption) cascadeScope {
	var s cascadeScope
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ownedBy devolve as guias do prestador, preservando a ordem.
func ownedBy(guides []models.Guia, prestadorID string) []models.Guia {
	out := make([]models.Guia, 0, len(guides))
	for _, g := range guides {
		if g.PrestadorID == prestadorID {
			out = append(out, g)
		}
	}
	return out
}

func containsGuide(guides []models.Guia, id string) bool {
	for _, g := range guides {
		if g.ID == id {
			return true
		}
	}
	return false
}

var (
	cancelOp = cascadeOp{
		name:       "cancelar",
		action:     "order_cancelled",
		eligible:   domain.IsCancellable,
		target:     domain.StatusCancelada,
		saleStatus: domain.SaleCancelada,
	}
	reverseOp = cascadeOp{
		name:       "estornar",
		action:     "order_reversed",
		eligible:   domain.IsReversible,
		target:     domain.StatusEstornada,
		saleStatus: domain.SaleEstornada,
	}
)

func (c *orderCascade) run(
	ctx context.Context,
	op cascadeOp,
	guideID string,
	actor domain.Actor,
	scope cascadeScope,
) (domain.CascadeResult, error) {

	all, err := c.siblings.Execute(ctx, guideID)
	if err != nil {
		return domain.CascadeResult{}, err
	}

	siblings := all
	if scope.prestadorID != "" {
		siblings = ownedBy(all, scope.prestadorID)
		if !containsGuide(siblings, guideID) {
			return domain.CascadeResult{}, domain.ErrGuideNotFound
		}
	}
	wholeOrder := len(siblings) == len(all)

	res := domain.CascadeResult{
		Total:    len(siblings),
		GuideIDs: make([]string, 0, len(siblings)),
	}
	var unidadeID string
	for _, g := range siblings {
		res.GuideIDs = append(res.GuideIDs, g.ID)
		if res.SaleID == "" {
			res.SaleID = g.AgendamentoID
		}
		if unidadeID == "" {
			unidadeID = g.UnidadeID
		}
	}

	// --------------------------------------------------
	// Guias
	// --------------------------------------------------

	for _, g := range siblings {
		st := domain.Status(g.Status)
		if !op.eligible(st) {
			continue
		}

		if _, err := c.updater.Execute(ctx, g.ID, op.target, actor); err != nil {
			c.log.Warn().Err(err).
				Str("operation", op.name).
				Str("guia_id", g.ID).
				Str("agendamento_id", g.AgendamentoID).
				Str("status", g.Status).
				Msg("cascade guide update failed")

			res.Failed = append(res.Failed, domain.FailedGuide{
				GuideID: g.ID,
				Status:  st,
				Reason:  err.Error(),
			})
			continue
		}
		res.Affected++
	}

	// --------------------------------------------------
	// Venda
	// --------------------------------------------------

	if res.SaleID != "" && !wholeOrder {
		c.log.Info().
			Str("operation", op.name).
			Str("agendamento_id", res.SaleID).
			Str("prestador_id", scope.prestadorID).
			Msg("sale status kept: order has guides of other prestadores")
	}

	if res.SaleID != "" && wholeOrder {
		if err := c.repo.UpdateSaleStatus(ctx, res.SaleID, op.saleStatus); err != nil {
			c.log.Error().Err(err).
				Str("operation", op.name).
				Str("agendamento_id", res.SaleID).
				Msg("cascade sale update failed")
			return res, fmt.Errorf("%s sale %s: %w", op.name, res.SaleID, err)
		}
	}

	if res.HasFailures() {
		c.recordFollowUp(ctx, op, guideID, actor, res)
	}

	meta := map[string]any{
		"guia_origem_id": guideID,
		"affected":       res.Affected,
		"total":          res.Total,
		"failed":         len(res.Failed),
	}
	if scope.prestadorID != "" {
		meta["prestador_id"] = scope.prestadorID
	}

	c.audit.Dispatch(audit.Event{
		UnidadeID: unidadeID,
		UserID:    audit.UserFrom(ctx),
		Actor:     string(actor),
		Action:    op.action,
		Entity:    "venda",
		EntityID:  res.SaleID,
		Metadata:  meta,
	})

	return res, nil
}

func (c *orderCascade) recordFollowUp(
	ctx context.Context,
	op cascadeOp,
	guideID string,
	actor domain.Actor,
	res domain.CascadeResult,
) {
	report := followup.Report{
		Operation: op.name,
		SaleID:    res.SaleID,
		GuideID:   guideID,
		Actor:     string(actor),
		Affected:  res.Affected,
		Total:     res.Total,
		CreatedAt: c.clock(),
	}
	for _, f := range res.Failed {
		report.Failed = append(report.Failed, followup.Failure{
			GuideID: f.GuideID,
			Status:  string(f.Status),
			Reason:  f.Reason,
		})
	}

	if err := c.followup.Record(ctx, report); err != nil {
		c.log.Error().Err(err).
			Str("agendamento_id", res.SaleID).
			Msg("follow-up report not archived")
	}
}

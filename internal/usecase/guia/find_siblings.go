package guia

import (
	"context"

	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

type FindSiblingGuides struct {
	repo domain.Repository
}

func NewFindSiblingGuides(repo domain.Repository) *FindSiblingGuides {
	return &FindSiblingGuides{repo: repo}
}

// Execute devolve todas as guias da mesma venda, incluindo a de origem,
// ordenadas por data de emissão. Guia sem venda é irmã apenas de si mesma.
func (uc *FindSiblingGuides) Execute(
	ctx context.Context,
	guideID string,
) ([]models.Guia, error) {

	g, err := uc.repo.GetGuide(ctx, guideID)
	if err != nil {
		return nil, err
	}

	if g.AgendamentoID == "" {
		return []models.Guia{*g}, nil
	}

	return uc.repo.ListGuidesBySale(ctx, g.AgendamentoID)
}

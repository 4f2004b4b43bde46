package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

func TestGuiaMemoryRepository_SaleAndSiblings(t *testing.T) {
	ctx := context.Background()
	repo := NewGuiaMemoryRepository()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	sale := &models.Venda{Status: string(domain.SaleConcluida)}
	guides := []models.Guia{
		{CodigoAutenticacao: "B", Status: string(domain.StatusEmitida), DataEmissao: base.Add(time.Hour)},
		{CodigoAutenticacao: "A", Status: string(domain.StatusEmitida), DataEmissao: base},
	}

	require.NoError(t, repo.CreateSaleWithGuides(ctx, sale, guides))
	require.NotEmpty(t, sale.ID)

	siblings, err := repo.ListGuidesBySale(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, siblings, 2)
	assert.Equal(t, "A", siblings[0].CodigoAutenticacao)
	assert.Equal(t, "B", siblings[1].CodigoAutenticacao)

	err = repo.CreateSaleWithGuides(ctx, &models.Venda{}, []models.Guia{{CodigoAutenticacao: "A"}})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestGuiaMemoryRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewGuiaMemoryRepository()

	_, err := repo.GetGuide(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrGuideNotFound)

	err = repo.UpdateGuideStatus(ctx, &models.Guia{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrGuideNotFound)

	err = repo.UpdateSaleStatus(ctx, "missing", domain.SaleCancelada)
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func TestGuiaMemoryRepository_MarkExpiredOnlyWhenEmitida(t *testing.T) {
	ctx := context.Background()
	repo := NewGuiaMemoryRepository()

	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.Seed(nil,
		models.Guia{ID: "g-1", Status: string(domain.StatusEmitida), DataEmissao: issued},
		models.Guia{ID: "g-2", Status: string(domain.StatusRealizada), DataEmissao: issued},
	)

	candidates, err := repo.ListExpirationCandidates(ctx, issued.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	ok, err := repo.MarkExpired(ctx, &models.Guia{ID: "g-1"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkExpired(ctx, &models.Guia{ID: "g-2"})
	require.NoError(t, err)
	assert.False(t, ok)

	g, err := repo.GetGuide(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusExpirada), g.Status)
}

func TestGuiaMemoryRepository_ListFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewGuiaMemoryRepository()

	now := time.Now()
	repo.Seed(nil,
		models.Guia{ID: "g-1", PrestadorID: "p-1", Status: string(domain.StatusEmitida), DataEmissao: now},
		models.Guia{ID: "g-2", PrestadorID: "p-2", Status: string(domain.StatusEmitida), DataEmissao: now},
		models.Guia{ID: "g-3", PrestadorID: "p-1", Status: string(domain.StatusPaga), DataEmissao: now},
	)

	out, err := repo.ListGuides(ctx, domain.ListFilter{PrestadorID: "p-1", Statuses: []domain.Status{domain.StatusEmitida}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "g-1", out[0].ID)
}

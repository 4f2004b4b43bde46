package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

// GuiaMemoryRepository guarda guias e vendas em memória (STORAGE_DRIVER=memory).
type GuiaMemoryRepository struct {
	mu     sync.RWMutex
	guides map[string]models.Guia
	sales  map[string]models.Venda
}

func NewGuiaMemoryRepository() *GuiaMemoryRepository {
	return &GuiaMemoryRepository{
		guides: make(map[string]models.Guia),
		sales:  make(map[string]models.Venda),
	}
}

// Seed insere linhas diretamente, sem regras de negócio.
func (r *GuiaMemoryRepository) Seed(sale *models.Venda, guides ...models.Guia) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sale != nil {
		if sale.ID == "" {
			sale.ID = uuid.NewString()
		}
		s := *sale
		s.Guias = nil
		r.sales[s.ID] = s
	}
	for _, g := range guides {
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		r.guides[g.ID] = g
	}
}

func (r *GuiaMemoryRepository) Sale(id string) (models.Venda, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sales[id]
	return s, ok
}

func (r *GuiaMemoryRepository) GetGuide(_ context.Context, id string) (*models.Guia, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.guides[id]
	if !ok {
		return nil, domain.ErrGuideNotFound
	}
	return &g, nil
}

func (r *GuiaMemoryRepository) ListGuides(_ context.Context, filter domain.ListFilter) ([]models.Guia, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Guia, 0)
	for _, g := range r.guides {
		if filter.UnidadeID != "" && g.UnidadeID != filter.UnidadeID {
			continue
		}
		if filter.PrestadorID != "" && g.PrestadorID != filter.PrestadorID {
			continue
		}
		if filter.AgendamentoID != "" && g.AgendamentoID != filter.AgendamentoID {
			continue
		}
		if len(filter.Statuses) > 0 && !hasStatus(filter.Statuses, g.Status) {
			continue
		}
		out = append(out, g)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DataEmissao.Equal(out[j].DataEmissao) {
			return out[i].ID < out[j].ID
		}
		return out[i].DataEmissao.After(out[j].DataEmissao)
	})
	return out, nil
}

func (r *GuiaMemoryRepository) ListGuidesBySale(_ context.Context, saleID string) ([]models.Guia, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Guia, 0)
	for _, g := range r.guides {
		if g.AgendamentoID == saleID {
			out = append(out, g)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DataEmissao.Equal(out[j].DataEmissao) {
			return out[i].ID < out[j].ID
		}
		return out[i].DataEmissao.Before(out[j].DataEmissao)
	})
	return out, nil
}

func (r *GuiaMemoryRepository) UpdateGuideStatus(_ context.Context, g *models.Guia) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.guides[g.ID]
	if !ok {
		return domain.ErrGuideNotFound
	}

	stored.Status = g.Status
	stored.DataRealizacao = g.DataRealizacao
	stored.DataFaturamento = g.DataFaturamento
	stored.DataPagamento = g.DataPagamento
	stored.DataCancelamento = g.DataCancelamento
	stored.DataEstorno = g.DataEstorno
	stored.UpdatedAt = time.Now()

	r.guides[g.ID] = stored
	return nil
}

func (r *GuiaMemoryRepository) ListExpirationCandidates(_ context.Context, issuedBefore time.Time) ([]models.Guia, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Guia, 0)
	for _, g := range r.guides {
		if g.Status == string(domain.StatusEmitida) && g.DataEmissao.Before(issuedBefore) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataEmissao.Before(out[j].DataEmissao) })
	return out, nil
}

func (r *GuiaMemoryRepository) MarkExpired(_ context.Context, g *models.Guia) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.guides[g.ID]
	if !ok || stored.Status != string(domain.StatusEmitida) {
		return false, nil
	}

	stored.Status = string(domain.StatusExpirada)
	stored.DataExpiracao = g.DataExpiracao
	stored.UpdatedAt = time.Now()
	r.guides[g.ID] = stored
	return true, nil
}

func (r *GuiaMemoryRepository) CreateSaleWithGuides(_ context.Context, sale *models.Venda, guides []models.Guia) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes := make(map[string]bool, len(r.guides))
	for _, g := range r.guides {
		codes[g.CodigoAutenticacao] = true
	}
	for _, g := range guides {
		if codes[g.CodigoAutenticacao] {
			return domain.ErrDuplicateCode
		}
		codes[g.CodigoAutenticacao] = true
	}

	now := time.Now()
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	sale.CreatedAt, sale.UpdatedAt = now, now
	s := *sale
	s.Guias = nil
	r.sales[sale.ID] = s

	for i := range guides {
		if guides[i].ID == "" {
			guides[i].ID = uuid.NewString()
		}
		guides[i].AgendamentoID = sale.ID
		guides[i].CreatedAt, guides[i].UpdatedAt = now, now
		r.guides[guides[i].ID] = guides[i]
	}
	return nil
}

func (r *GuiaMemoryRepository) UpdateSaleStatus(_ context.Context, saleID string, status domain.SaleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sales[saleID]
	if !ok {
		return domain.ErrSaleNotFound
	}
	s.Status = string(status)
	s.UpdatedAt = time.Now()
	r.sales[saleID] = s
	return nil
}

func hasStatus(statuses []domain.Status, s string) bool {
	for _, st := range statuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

var _ domain.Repository = (*GuiaMemoryRepository)(nil)

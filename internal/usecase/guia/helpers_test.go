package guia

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/agendaja-guias/internal/audit"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/followup"
	"github.com/BruksfildServices01/agendaja-guias/internal/infra/repository"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
	"github.com/BruksfildServices01/agendaja-guias/internal/timezone"
)

var testNow = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

type fakeRecorder struct {
	mu      sync.Mutex
	reports []followup.Report
}

func (f *fakeRecorder) Record(_ context.Context, r followup.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, r)
	return nil
}

// seedOrder cria uma venda com uma guia por status, emitidas em sequência.
func seedOrder(repo *repository.GuiaMemoryRepository, saleID string, statuses ...domain.Status) []string {
	repo.Seed(&models.Venda{ID: saleID, UnidadeID: "u-1", Status: string(domain.SaleConcluida)})

	ids := make([]string, 0, len(statuses))
	for i, st := range statuses {
		id := saleID + "-g" + string(rune('1'+i))
		repo.Seed(nil, models.Guia{
			ID:                 id,
			AgendamentoID:      saleID,
			UnidadeID:          "u-1",
			PrestadorID:        "p-1",
			Status:             string(st),
			DataEmissao:        testNow.Add(-time.Duration(len(statuses)-i) * time.Hour),
			Valor:              decimal.NewFromInt(100),
			CodigoAutenticacao: id,
		})
		ids = append(ids, id)
	}
	return ids
}

func newTestDispatcher(t *testing.T) (*audit.Dispatcher, *audit.MemoryLogger) {
	t.Helper()
	sink := audit.NewMemoryLogger()
	d := audit.NewDispatcher(sink, zerolog.Nop())
	t.Cleanup(d.Close)
	return d, sink
}

func newTestCancel(repo domain.Repository, d *audit.Dispatcher, rec followup.Recorder) *CancelOrder {
	uc := NewCancelOrder(repo, d, rec, zerolog.Nop())
	uc.cascade.clock = timezone.Fixed(testNow)
	uc.cascade.updater.clock = timezone.Fixed(testNow)
	return uc
}

func newTestReverse(repo domain.Repository, d *audit.Dispatcher, rec followup.Recorder) *ReverseOrder {
	uc := NewReverseOrder(repo, d, rec, zerolog.Nop())
	uc.cascade.clock = timezone.Fixed(testNow)
	uc.cascade.updater.clock = timezone.Fixed(testNow)
	return uc
}

func statusOf(t *testing.T, repo domain.Repository, id string) domain.Status {
	t.Helper()
	g, err := repo.GetGuide(context.Background(), id)
	if err != nil {
		t.Fatalf("get guide %s: %v", id, err)
	}
	return domain.Status(g.Status)
}

// assignPrestador troca o prestador de uma guia já semeada.
func assignPrestador(t *testing.T, repo *repository.GuiaMemoryRepository, id, prestadorID string) string {
	t.Helper()
	g, err := repo.GetGuide(context.Background(), id)
	if err != nil {
		t.Fatalf("get guide %s: %v", id, err)
	}
	g.PrestadorID = prestadorID
	repo.Seed(nil, *g)
	return id
}

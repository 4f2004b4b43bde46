package guia

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/infra/repository"
)

func TestReverseOrder_OnlyPaidGuides(t *testing.T) {
	repo := repository.NewGuiaMemoryRepository()
	ids := seedOrder(repo, "s-1", domain.StatusPaga, domain.StatusFaturada, domain.StatusPaga, domain.StatusCancelada)
	d, sink := newTestDispatcher(t)

	res, err := newTestReverse(repo, d, nil).Execute(context.Background(), ids[1])
	require.NoError(t, err)

	assert.Equal(t, 2, res.Affected)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, domain.StatusEstornada, statusOf(t, repo, ids[0]))
	assert.Equal(t, domain.StatusFaturada, statusOf(t, repo, ids[1]))
	assert.Equal(t, domain.StatusEstornada, statusOf(t, repo, ids[2]))
	assert.Equal(t, domain.StatusCancelada, statusOf(t, repo, ids[3]))

	g, err := repo.GetGuide(context.Background(), ids[0])
	require.NoError(t, err)
	require.NotNil(t, g.DataEstorno)
	assert.True(t, g.DataEstorno.Equal(testNow))

	sale, _ := repo.Sale("s-1")
	assert.Equal(t, string(domain.SaleEstornada), sale.Status)

	d.Close()
	logs := sink.Logs()
	require.NotEmpty(t, logs)
	last := logs[len(logs)-1]
	assert.Equal(t, "order_reversed", last.Action)
	assert.Equal(t, string(domain.ActorUnidade), last.Actor)
}

func TestReverseOrder_NoPaidGuides(t *testing.T) {
	repo := repository.NewGuiaMemoryRepository()
	ids := seedOrder(repo, "s-1", domain.StatusEmitida, domain.StatusFaturada)

	res, err := newTestReverse(repo, nil, nil).Execute(context.Background(), ids[0])
	require.NoError(t, err)

	assert.Equal(t, 0, res.Affected)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, domain.StatusEmitida, statusOf(t, repo, ids[0]))

	sale, _ := repo.Sale("s-1")
	assert.Equal(t, string(domain.SaleEstornada), sale.Status, "sale is reversed even with nothing to reverse")
}

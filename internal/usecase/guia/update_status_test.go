package guia

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/BruksfildServices01/agendaja-guias/internal/audit"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/domain/guia/mocks"
	"github.com/BruksfildServices01/agendaja-guias/internal/infra/repository"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
	"github.com/BruksfildServices01/agendaja-guias/internal/timezone"
)

func TestUpdateGuideStatus_UnidadeMarksPaid(t *testing.T) {
	repo := repository.NewGuiaMemoryRepository()
	ids := seedOrder(repo, "s-1", domain.StatusFaturada)
	d, sink := newTestDispatcher(t)

	uc := NewUpdateGuideStatus(repo, d)
	uc.clock = timezone.Fixed(testNow)

	ctx := audit.WithUser(context.Background(), "user-9")
	g, err := uc.Execute(ctx, ids[0], domain.StatusPaga, domain.ActorUnidade)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPaga), g.Status)
	require.NotNil(t, g.DataPagamento)
	assert.True(t, g.DataPagamento.Equal(testNow))

	assert.Equal(t, domain.StatusPaga, statusOf(t, repo, ids[0]))

	d.Close()
	logs := sink.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "guide_status_changed", logs[0].Action)
	assert.Equal(t, "user-9", logs[0].UserID)
	assert.JSONEq(t, `{"from":"faturada","to":"paga"}`, logs[0].Metadata)
}

func TestUpdateGuideStatus_PrestadorCannotMarkPaid(t *testing.T) {
	repo := repository.NewGuiaMemoryRepository()
	ids := seedOrder(repo, "s-1", domain.StatusFaturada)

	uc := NewUpdateGuideStatus(repo, nil)

	_, err := uc.Execute(context.Background(), ids[0], domain.StatusPaga, domain.ActorPrestador)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.StatusFaturada, statusOf(t, repo, ids[0]), "rejected transition leaves the row as is")
}

func TestUpdateGuideStatus_InputErrors(t *testing.T) {
	repo := repository.NewGuiaMemoryRepository()
	ids := seedOrder(repo, "s-1", domain.StatusEmitida)
	uc := NewUpdateGuideStatus(repo, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, "missing", domain.StatusRealizada, domain.ActorPrestador)
	assert.ErrorIs(t, err, domain.ErrGuideNotFound)

	_, err = uc.Execute(ctx, ids[0], domain.Status("aprovada"), domain.ActorUnidade)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = uc.Execute(ctx, ids[0], domain.StatusRealizada, domain.Actor("cliente"))
	assert.ErrorIs(t, err, domain.ErrInvalidActor)

	_, err = uc.Execute(ctx, ids[0], domain.StatusEmitida, domain.ActorUnidade)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "self transition")
}

func TestUpdateGuideStatus_StorageFailureSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	repo.EXPECT().
		GetGuide(gomock.Any(), "g-1").
		Return(&models.Guia{ID: "g-1", Status: string(domain.StatusEmitida)}, nil)
	repo.EXPECT().
		UpdateGuideStatus(gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))

	uc := NewUpdateGuideStatus(repo, nil)
	_, err := uc.Execute(context.Background(), "g-1", domain.StatusRealizada, domain.ActorPrestador)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestFindSiblingGuides(t *testing.T) {
	repo := repository.NewGuiaMemoryRepository()
	ids := seedOrder(repo, "s-1", domain.StatusEmitida, domain.StatusRealizada, domain.StatusPaga)
	repo.Seed(nil, models.Guia{ID: "lonely", Status: string(domain.StatusEmitida), DataEmissao: testNow})

	uc := NewFindSiblingGuides(repo)
	ctx := context.Background()

	siblings, err := uc.Execute(ctx, ids[2])
	require.NoError(t, err)
	require.Len(t, siblings, 3)
	assert.Equal(t, ids[0], siblings[0].ID, "ordered by data_emissao")
	assert.Equal(t, ids[2], siblings[2].ID, "includes the origin guide")

	siblings, err = uc.Execute(ctx, "lonely")
	require.NoError(t, err)
	require.Len(t, siblings, 1)
	assert.Equal(t, "lonely", siblings[0].ID)

	_, err = uc.Execute(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrGuideNotFound)
}

package guia

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agendaja-guias/internal/httperr"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

func TestIsTransitionAllowed_Table(t *testing.T) {
	allowed := map[Actor]map[Status][]Status{
		ActorPrestador: {
			StatusEmitida:   {StatusRealizada, StatusCancelada},
			StatusRealizada: {StatusFaturada, StatusCancelada},
			StatusFaturada:  {StatusCancelada},
		},
		ActorUnidade: {
			StatusEmitida:   {StatusCancelada},
			StatusRealizada: {StatusCancelada},
			StatusFaturada:  {StatusPaga, StatusCancelada, StatusEstornada},
			StatusPaga:      {StatusEstornada},
		},
	}

	for _, actor := range []Actor{ActorPrestador, ActorUnidade} {
		for _, from := range AllStatuses() {
			for _, to := range AllStatuses() {
				want := false
				for _, s := range allowed[actor][from] {
					if s == to {
						want = true
					}
				}
				assert.Equalf(t, want, IsTransitionAllowed(from, to, actor),
					"%s: %s -> %s", actor, from, to)
			}
		}
	}
}

func TestIsTransitionAllowed_TerminalStates(t *testing.T) {
	for _, actor := range []Actor{ActorPrestador, ActorUnidade} {
		for _, from := range []Status{StatusCancelada, StatusEstornada, StatusExpirada} {
			assert.Empty(t, AllowedNext(from, actor))
			for _, to := range AllStatuses() {
				assert.False(t, IsTransitionAllowed(from, to, actor), "%s: %s -> %s", actor, from, to)
			}
		}
	}
}

func TestIsTransitionAllowed_UnknownInputs(t *testing.T) {
	assert.False(t, IsTransitionAllowed("rascunho", StatusCancelada, ActorUnidade))
	assert.False(t, IsTransitionAllowed(StatusEmitida, StatusCancelada, Actor("admin")))
	assert.Empty(t, AllowedNext(StatusEmitida, Actor("admin")))
}

func TestPrestador_CannotMoveMoney(t *testing.T) {
	for _, from := range AllStatuses() {
		assert.False(t, IsTransitionAllowed(from, StatusPaga, ActorPrestador))
		assert.False(t, IsTransitionAllowed(from, StatusEstornada, ActorPrestador))
	}
}

func TestAllowedNext_ReturnsCopy(t *testing.T) {
	next := AllowedNext(StatusFaturada, ActorUnidade)
	require.Len(t, next, 3)
	next[0] = StatusExpirada

	assert.True(t, IsTransitionAllowed(StatusFaturada, StatusPaga, ActorUnidade))
}

func TestParseStatusAndActor(t *testing.T) {
	st, ok := ParseStatus("faturada")
	assert.True(t, ok)
	assert.Equal(t, StatusFaturada, st)

	_, ok = ParseStatus("FATURADA")
	assert.False(t, ok)

	a, ok := ParseActor("unidade")
	assert.True(t, ok)
	assert.Equal(t, ActorUnidade, a)

	_, ok = ParseActor("cliente")
	assert.False(t, ok)
}

func TestTransition_StampsDates(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		from  Status
		to    Status
		actor Actor
		check func(g *models.Guia) *time.Time
	}{
		{StatusEmitida, StatusRealizada, ActorPrestador, func(g *models.Guia) *time.Time { return g.DataRealizacao }},
		{StatusRealizada, StatusFaturada, ActorPrestador, func(g *models.Guia) *time.Time { return g.DataFaturamento }},
		{StatusFaturada, StatusPaga, ActorUnidade, func(g *models.Guia) *time.Time { return g.DataPagamento }},
		{StatusEmitida, StatusCancelada, ActorUnidade, func(g *models.Guia) *time.Time { return g.DataCancelamento }},
		{StatusPaga, StatusEstornada, ActorUnidade, func(g *models.Guia) *time.Time { return g.DataEstorno }},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			g := &models.Guia{ID: "g-1", Status: string(tc.from)}
			require.NoError(t, Transition(g, tc.to, tc.actor, now))
			assert.Equal(t, string(tc.to), g.Status)

			stamped := tc.check(g)
			require.NotNil(t, stamped)
			assert.True(t, stamped.Equal(now))
			assert.NotEmpty(t, StampedColumn(tc.to))
		})
	}
}

func TestTransition_Rejected(t *testing.T) {
	g := &models.Guia{ID: "g-1", Status: string(StatusFaturada)}

	err := Transition(g, StatusPaga, ActorPrestador, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	assert.Equal(t, string(StatusFaturada), g.Status)
	assert.Nil(t, g.DataPagamento)
}

func TestCascadeResult(t *testing.T) {
	r := CascadeResult{Affected: 2, Total: 3}
	assert.True(t, r.Partial())
	assert.False(t, r.HasFailures())

	r = CascadeResult{Affected: 3, Total: 3}
	assert.False(t, r.Partial())

	r = CascadeResult{Affected: 1, Total: 2, Failed: []FailedGuide{{GuideID: "g-2"}}}
	assert.True(t, r.HasFailures())
}

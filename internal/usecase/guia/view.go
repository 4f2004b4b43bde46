package guia

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/agendaja-guias/internal/cache"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/dto"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

// toView aplica a política de expiração e monta os DTOs de leitura.
func toView(stored []models.Guia, now time.Time, alertDays int) []dto.GuiaDTO {
	derived := domain.ApplyExpirationPolicy(stored, now)

	out := make([]dto.GuiaDTO, 0, len(stored))
	for i := range stored {
		out = append(out, dto.NewGuiaDTO(stored[i], derived[i], now, alertDays))
	}
	return out
}

// readCache guarda as linhas armazenadas, nunca a visão derivada:
// a expiração depende do "agora" da leitura.
type readCache struct {
	store cache.Store
	ttl   time.Duration
	log   zerolog.Logger
}

func (c readCache) load(
	ctx context.Context,
	key string,
	fetch func() ([]models.Guia, error),
) ([]models.Guia, error) {

	if c.store != nil {
		raw, ok, err := c.store.Get(ctx, key)
		if err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		if ok {
			var guides []models.Guia
			if err := json.Unmarshal(raw, &guides); err == nil {
				return guides, nil
			}
			c.log.Warn().Str("key", key).Msg("cache entry discarded")
		}
	}

	guides, err := fetch()
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		if raw, err := json.Marshal(guides); err == nil {
			if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
				c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
			}
		}
	}
	return guides, nil
}

package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	guidePrefix    = "guias:"
	guideListScope = "guias:list:"
)

// Store é o cache de leitura das listas de guias. As chaves são invalidadas
// explicitamente por quem fez a mutação; o núcleo não publica eventos.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

func GuideKey(id string) string {
	return guidePrefix + id
}

func OrderKey(saleID string) string {
	return "pedido:" + saleID
}

func SaleKey(saleID string) string {
	return "vendas:" + saleID
}

// GuideListPattern cobre todas as listas de guias em cache.
func GuideListPattern() string {
	return guideListScope + "*"
}

// GuideListKey monta uma chave estável a partir dos filtros da listagem.
func GuideListKey(filters map[string]string) string {
	parts := make([]string, 0, len(filters))
	for k, v := range filters {
		if v == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(parts)
	return guideListScope + strings.Join(parts, "&")
}

// KeysForGuides devolve as chaves afetadas por mutações nessas guias e vendas.
func KeysForGuides(guideIDs []string, saleIDs ...string) []string {
	keys := []string{GuideListPattern()}
	for _, id := range guideIDs {
		keys = append(keys, GuideKey(id))
	}
	for _, id := range saleIDs {
		if id == "" {
			continue
		}
		keys = append(keys, OrderKey(id), SaleKey(id))
	}
	return keys
}

func isPattern(key string) bool {
	return strings.HasSuffix(key, "*")
}

// Noop é usado quando REDIS_URL não está configurado.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Invalidate(context.Context, ...string) error              { return nil }

var _ Store = Noop{}

package guia

import (
	"math"
	"time"

	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

const (
	ExpirationWindow = 30 * 24 * time.Hour
	day              = 24 * time.Hour

	DefaultAlertDays = 5
)

func ExpiresAt(issuedAt time.Time) time.Time {
	return issuedAt.Add(ExpirationWindow)
}

// DaysUntilExpiration arredonda para cima; zero ou negativo significa janela vencida.
func DaysUntilExpiration(issuedAt, now time.Time) int {
	remaining := ExpiresAt(issuedAt).Sub(now)
	return int(math.Ceil(float64(remaining) / float64(day)))
}

// IsExpired usa comparação estrita: exatamente 30 dias após a emissão ainda não expirou.
func IsExpired(issuedAt, now time.Time) bool {
	return now.After(ExpiresAt(issuedAt))
}

// IsExpiringSoon sinaliza guias emitidas com 0 < dias restantes <= alertDays.
func IsExpiringSoon(g models.Guia, now time.Time, alertDays int) bool {
	if Status(g.Status) != StatusEmitida {
		return false
	}
	left := DaysUntilExpiration(g.DataEmissao, now)
	return left > 0 && left <= alertDays
}

// ApplyExpirationPolicy devolve cópias das guias com a visão derivada de expiração.
// Guias emitidas cuja janela passou saem como expirada; nada é persistido aqui.
func ApplyExpirationPolicy(guides []models.Guia, now time.Time) []models.Guia {
	out := make([]models.Guia, len(guides))
	for i, g := range guides {
		exp := ExpiresAt(g.DataEmissao)
		g.DataExpiracao = &exp

		if Status(g.Status) == StatusEmitida && now.After(exp) {
			g.Status = string(StatusExpirada)
		}
		out[i] = g
	}
	return out
}

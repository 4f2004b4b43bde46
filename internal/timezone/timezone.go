package timezone

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Fuso das unidades quando APP_TIMEZONE não é informado.
const DefaultTimezone = "America/Sao_Paulo"

var current atomic.Pointer[time.Location]

func init() {
	current.Store(Location(DefaultTimezone))
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolve tz e cai para o fuso padrão (ou UTC, sem tzdata).
func Location(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); tz != "" && err == nil {
		return loc
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Configure troca o fuso usado por Now. Chamado uma vez no boot.
func Configure(tz string) error {
	if tz == "" {
		return nil
	}
	if !IsValid(tz) {
		return fmt.Errorf("invalid timezone %q", tz)
	}
	current.Store(Location(tz))
	return nil
}

func Current() *time.Location {
	return current.Load()
}

// Now é o relógio de produção: datas de emissão e de status saem neste fuso.
func Now() time.Time {
	return time.Now().In(Current())
}

// Clock é a fonte de "agora" dos casos de uso; testes injetam um relógio fixo.
type Clock func() time.Time

func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

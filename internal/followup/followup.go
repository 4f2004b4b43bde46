package followup

import (
	"context"
	"time"
)

// Report descreve um pedido que ficou com cascata parcial e precisa de revisão manual.
type Report struct {
	Operation string    `json:"operation"`
	SaleID    string    `json:"agendamento_id"`
	GuideID   string    `json:"guia_origem_id"`
	Actor     string    `json:"actor"`
	Affected  int       `json:"affected_count"`
	Total     int       `json:"total_count"`
	Failed    []Failure `json:"failed"`
	CreatedAt time.Time `json:"created_at"`
}

type Failure struct {
	GuideID string `json:"guia_id"`
	Status  string `json:"status"`
	Reason  string `json:"reason"`
}

type Recorder interface {
	Record(ctx context.Context, r Report) error
}

type Noop struct{}

func (Noop) Record(context.Context, Report) error { return nil }

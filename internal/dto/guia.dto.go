package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

// GuiaDTO é a guia como exibida: status já com a política de expiração aplicada.
type GuiaDTO struct {
	ID                 string          `json:"id"`
	AgendamentoID      string          `json:"agendamento_id"`
	UnidadeID          string          `json:"unidade_id"`
	ClienteID          string          `json:"cliente_id"`
	PrestadorID        string          `json:"prestador_id"`
	ServicoID          string          `json:"servico_id"`
	Status             string          `json:"status"`
	StatusArmazenado   string          `json:"status_armazenado"`
	Valor              decimal.Decimal `json:"valor"`
	CodigoAutenticacao string          `json:"codigo_autenticacao"`

	DataEmissao   time.Time  `json:"data_emissao"`
	DataExpiracao *time.Time `json:"data_expiracao"`
	DiasRestantes *int       `json:"dias_restantes,omitempty"`
	ExpiraEmBreve bool       `json:"expira_em_breve"`

	DataRealizacao   *time.Time `json:"data_realizacao,omitempty"`
	DataFaturamento  *time.Time `json:"data_faturamento,omitempty"`
	DataPagamento    *time.Time `json:"data_pagamento,omitempty"`
	DataCancelamento *time.Time `json:"data_cancelamento,omitempty"`
	DataEstorno      *time.Time `json:"data_estorno,omitempty"`
}

// NewGuiaDTO recebe a linha armazenada e a derivada por ApplyExpirationPolicy.
// Dias restantes só aparecem enquanto a guia segue emitida.
func NewGuiaDTO(stored, derived models.Guia, now time.Time, alertDays int) GuiaDTO {
	out := GuiaDTO{
		ID:                 derived.ID,
		AgendamentoID:      derived.AgendamentoID,
		UnidadeID:          derived.UnidadeID,
		ClienteID:          derived.ClienteID,
		PrestadorID:        derived.PrestadorID,
		ServicoID:          derived.ServicoID,
		Status:             derived.Status,
		StatusArmazenado:   stored.Status,
		Valor:              derived.Valor,
		CodigoAutenticacao: derived.CodigoAutenticacao,
		DataEmissao:        derived.DataEmissao,
		DataExpiracao:      derived.DataExpiracao,
		ExpiraEmBreve:      domain.IsExpiringSoon(derived, now, alertDays),
		DataRealizacao:     derived.DataRealizacao,
		DataFaturamento:    derived.DataFaturamento,
		DataPagamento:      derived.DataPagamento,
		DataCancelamento:   derived.DataCancelamento,
		DataEstorno:        derived.DataEstorno,
	}

	if domain.Status(derived.Status) == domain.StatusEmitida {
		days := domain.DaysUntilExpiration(derived.DataEmissao, now)
		out.DiasRestantes = &days
	}
	return out
}

// CascadeDTO é a resposta de cancelamento e estorno do pedido.
// Só um dos contadores vem preenchido, conforme a operação.
type CascadeDTO struct {
	AgendamentoID  string          `json:"agendamento_id,omitempty"`
	CancelledCount *int            `json:"cancelled_count,omitempty"`
	ReversedCount  *int            `json:"reversed_count,omitempty"`
	TotalCount     int             `json:"total_count"`
	Partial        bool            `json:"partial"`
	Failed         []FailedGuiaDTO `json:"failed"`
	Message        string          `json:"message"`
}

type FailedGuiaDTO struct {
	GuiaID string `json:"guia_id"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func NewCancelOrderDTO(res domain.CascadeResult, message string) CascadeDTO {
	out := newCascadeDTO(res, message)
	n := res.Affected
	out.CancelledCount = &n
	return out
}

func NewReverseOrderDTO(res domain.CascadeResult, message string) CascadeDTO {
	out := newCascadeDTO(res, message)
	n := res.Affected
	out.ReversedCount = &n
	return out
}

func newCascadeDTO(res domain.CascadeResult, message string) CascadeDTO {
	out := CascadeDTO{
		AgendamentoID: res.SaleID,
		TotalCount:    res.Total,
		Partial:       res.Partial(),
		Failed:        make([]FailedGuiaDTO, 0, len(res.Failed)),
		Message:       message,
	}
	for _, f := range res.Failed {
		out.Failed = append(out.Failed, FailedGuiaDTO{
			GuiaID: f.GuideID,
			Status: string(f.Status),
			Reason: f.Reason,
		})
	}
	return out
}

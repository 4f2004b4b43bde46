package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Guia é uma linha de serviço faturável emitida contra uma venda.
type Guia struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	// AgendamentoID liga a guia à venda de origem (pedido).
	AgendamentoID string `gorm:"type:varchar(36);index;not null" json:"agendamento_id"`

	UnidadeID   string `gorm:"type:varchar(36);index" json:"unidade_id"`
	ClienteID   string `gorm:"type:varchar(36)" json:"cliente_id"`
	PrestadorID string `gorm:"type:varchar(36);index" json:"prestador_id"`
	ServicoID   string `gorm:"type:varchar(36)" json:"servico_id"`

	Status             string          `gorm:"size:20;index;not null;default:'emitida'" json:"status"`
	DataEmissao        time.Time       `gorm:"not null;index" json:"data_emissao"`
	Valor              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"valor"`
	CodigoAutenticacao string          `gorm:"size:16;uniqueIndex;not null" json:"codigo_autenticacao"`

	DataRealizacao   *time.Time `json:"data_realizacao,omitempty"`
	DataFaturamento  *time.Time `json:"data_faturamento,omitempty"`
	DataPagamento    *time.Time `json:"data_pagamento,omitempty"`
	DataCancelamento *time.Time `json:"data_cancelamento,omitempty"`
	DataEstorno      *time.Time `json:"data_estorno,omitempty"`
	DataExpiracao    *time.Time `json:"data_expiracao,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Guia) TableName() string { return "guias" }

func (g *Guia) BeforeCreate(*gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

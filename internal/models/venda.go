package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Venda struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UnidadeID string `gorm:"type:varchar(36);index" json:"unidade_id"`
	ClienteID string `gorm:"type:varchar(36)" json:"cliente_id"`

	Status     string          `gorm:"size:20;not null;default:'concluida'" json:"status"`
	ValorTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"valor_total"`

	Guias []Guia `gorm:"foreignKey:AgendamentoID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"guias,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Venda) TableName() string { return "vendas" }

func (v *Venda) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UnidadeID string `gorm:"type:varchar(36);index" json:"unidade_id"`
	UserID    string `gorm:"type:varchar(36)" json:"user_id"`
	Actor     string `gorm:"size:20" json:"actor"`
	Action    string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID string `gorm:"type:varchar(36);index" json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

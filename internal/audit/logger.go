package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	return l.db.WithContext(ctx).Create(toModel(ev)).Error
}

// MemoryLogger guarda os eventos em memória (STORAGE_DRIVER=memory e testes).
type MemoryLogger struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(_ context.Context, ev Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	m := toModel(ev)
	m.ID = uint(len(l.logs) + 1)
	m.CreatedAt = time.Now()
	l.logs = append(l.logs, *m)
	return nil
}

func (l *MemoryLogger) Logs() []models.AuditLog {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.AuditLog, len(l.logs))
	copy(out, l.logs)
	return out
}

func toModel(ev Event) *models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return &models.AuditLog{
		UnidadeID: ev.UnidadeID,
		UserID:    ev.UserID,
		Actor:     ev.Actor,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
	}
}

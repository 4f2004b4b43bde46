package audit

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

// Query é sempre escopada por unidade.
type Query struct {
	UnidadeID string
	Action    string
	Entity    string
	EntityID  string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

type Reader interface {
	List(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	db := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("unidade_id = ?", q.UnidadeID)

	if q.Action != "" {
		db = db.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		db = db.Where("entity = ?", q.Entity)
	}
	if q.EntityID != "" {
		db = db.Where("entity_id = ?", q.EntityID)
	}
	if q.From != nil {
		db = db.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := db.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (l *MemoryLogger) List(_ context.Context, q Query) ([]models.AuditLog, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	matched := make([]models.AuditLog, 0)
	for _, log := range l.logs {
		if log.UnidadeID != q.UnidadeID {
			continue
		}
		if q.Action != "" && log.Action != q.Action {
			continue
		}
		if q.Entity != "" && log.Entity != q.Entity {
			continue
		}
		if q.EntityID != "" && log.EntityID != q.EntityID {
			continue
		}
		if q.From != nil && log.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && !log.CreatedAt.Before(*q.To) {
			continue
		}
		matched = append(matched, log)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := len(matched)
	if q.Limit > 0 && q.Offset+q.Limit < end {
		end = q.Offset + q.Limit
	}
	return matched[q.Offset:end], total, nil
}

var (
	_ Reader = (*Logger)(nil)
	_ Reader = (*MemoryLogger)(nil)
)

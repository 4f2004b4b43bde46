package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

const pgUniqueViolation = "23505"

type GuiaGormRepository struct {
	db *gorm.DB
}

func NewGuiaGormRepository(db *gorm.DB) *GuiaGormRepository {
	return &GuiaGormRepository{db: db}
}

// --------------------------------------------------
// Guide
// --------------------------------------------------

func (r *GuiaGormRepository) GetGuide(
	ctx context.Context,
	id string,
) (*models.Guia, error) {

	var g models.Guia
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&g).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGuideNotFound
		}
		return nil, fmt.Errorf("get guide %s: %w", id, err)
	}
	return &g, nil
}

func (r *GuiaGormRepository) ListGuides(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Guia, error) {

	q := r.db.WithContext(ctx).Model(&models.Guia{})

	if filter.UnidadeID != "" {
		q = q.Where("unidade_id = ?", filter.UnidadeID)
	}
	if filter.PrestadorID != "" {
		q = q.Where("prestador_id = ?", filter.PrestadorID)
	}
	if filter.AgendamentoID != "" {
		q = q.Where("agendamento_id = ?", filter.AgendamentoID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			statuses = append(statuses, string(st))
		}
		q = q.Where("status IN ?", statuses)
	}

	var guides []models.Guia
	if err := q.
		Order("data_emissao DESC").
		Find(&guides).Error; err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	return guides, nil
}

func (r *GuiaGormRepository) ListGuidesBySale(
	ctx context.Context,
	saleID string,
) ([]models.Guia, error) {

	var guides []models.Guia
	if err := r.db.WithContext(ctx).
		Where("agendamento_id = ?", saleID).
		Order("data_emissao ASC").
		Order("id ASC").
		Find(&guides).Error; err != nil {
		return nil, fmt.Errorf("list guides by sale %s: %w", saleID, err)
	}
	return guides, nil
}

func (r *GuiaGormRepository) UpdateGuideStatus(
	ctx context.Context,
	g *models.Guia,
) error {

	cols := []string{"status", "updated_at"}
	if col := domain.StampedColumn(domain.Status(g.Status)); col != "" {
		cols = append(cols, col)
	}

	res := r.db.WithContext(ctx).
		Model(g).
		Select(cols).
		Updates(g)
	if res.Error != nil {
		return fmt.Errorf("update guide %s: %w", g.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrGuideNotFound
	}
	return nil
}

// --------------------------------------------------
// Expiration
// --------------------------------------------------

func (r *GuiaGormRepository) ListExpirationCandidates(
	ctx context.Context,
	issuedBefore time.Time,
) ([]models.Guia, error) {

	var guides []models.Guia
	if err := r.db.WithContext(ctx).
		Where("status = ? AND data_emissao < ?", string(domain.StatusEmitida), issuedBefore).
		Order("data_emissao ASC").
		Find(&guides).Error; err != nil {
		return nil, fmt.Errorf("list expiration candidates: %w", err)
	}
	return guides, nil
}

func (r *GuiaGormRepository) MarkExpired(
	ctx context.Context,
	g *models.Guia,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Guia{}).
		Where("id = ? AND status = ?", g.ID, string(domain.StatusEmitida)).
		Updates(map[string]any{
			"status":         string(domain.StatusExpirada),
			"data_expiracao": g.DataExpiracao,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("mark guide %s expired: %w", g.ID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Sale
// --------------------------------------------------

func (r *GuiaGormRepository) CreateSaleWithGuides(
	ctx context.Context,
	sale *models.Venda,
	guides []models.Guia,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Guias").Create(sale).Error; err != nil {
			return err
		}

		for i := range guides {
			guides[i].AgendamentoID = sale.ID
		}

		if len(guides) > 0 {
			if err := tx.Create(&guides).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

func (r *GuiaGormRepository) UpdateSaleStatus(
	ctx context.Context,
	saleID string,
	status domain.SaleStatus,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Venda{}).
		Where("id = ?", saleID).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("update sale %s: %w", saleID, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Compile-time check
var _ domain.Repository = (*GuiaGormRepository)(nil)

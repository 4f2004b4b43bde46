package guia

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

type ListFilter struct {
	UnidadeID     string
	PrestadorID   string
	AgendamentoID string
	Statuses      []Status
}

type Repository interface {
	// -------- Guide --------
	GetGuide(
		ctx context.Context,
		id string,
	) (*models.Guia, error)

	ListGuides(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Guia, error)

	// ListGuidesBySale devolve as guias do pedido ordenadas por data_emissao ASC.
	ListGuidesBySale(
		ctx context.Context,
		saleID string,
	) ([]models.Guia, error)

	// UpdateGuideStatus grava status e a coluna de data do status em uma única linha.
	UpdateGuideStatus(
		ctx context.Context,
		g *models.Guia,
	) error

	// -------- Expiration --------
	ListExpirationCandidates(
		ctx context.Context,
		issuedBefore time.Time,
	) ([]models.Guia, error)

	// MarkExpired só altera a linha se ela ainda estiver emitida; devolve false caso contrário.
	MarkExpired(
		ctx context.Context,
		g *models.Guia,
	) (bool, error)

	// -------- Sale --------
	CreateSaleWithGuides(
		ctx context.Context,
		sale *models.Venda,
		guides []models.Guia,
	) error

	UpdateSaleStatus(
		ctx context.Context,
		saleID string,
		status SaleStatus,
	) error
}

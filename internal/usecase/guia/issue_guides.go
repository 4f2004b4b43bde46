package guia

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/agendaja-guias/internal/audit"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/httperr"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
	"github.com/BruksfildServices01/agendaja-guias/internal/timezone"
)

const (
	authCodeLength   = 10
	authCodeAttempts = 3
)

type IssueGuidesInput struct {
	UnidadeID string
	ClienteID string
	Items     []IssueGuideItem
}

type IssueGuideItem struct {
	PrestadorID string
	ServicoID   string
	Valor       decimal.Decimal
}

// IssueGuides registra a venda e emite uma guia por item, tudo ou nada.
type IssueGuides struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	clock   timezone.Clock
	newCode func() string
}

func NewIssueGuides(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *IssueGuides {
	return &IssueGuides{
		repo:    repo,
		audit:   audit,
		clock:   timezone.Now,
		newCode: newAuthCode,
	}
}

func (uc *IssueGuides) Execute(
	ctx context.Context,
	in IssueGuidesInput,
) (*models.Venda, error) {

	if in.UnidadeID == "" || in.ClienteID == "" || len(in.Items) == 0 {
		return nil, httperr.ErrBusiness("invalid_sale")
	}

	total := decimal.Zero
	for _, it := range in.Items {
		if it.PrestadorID == "" || it.ServicoID == "" || it.Valor.IsNegative() {
			return nil, httperr.ErrBusiness("invalid_sale_item")
		}
		total = total.Add(it.Valor)
	}

	now := uc.clock()

	var (
		sale   *models.Venda
		guides []models.Guia
		err    error
	)
	for attempt := 0; attempt < authCodeAttempts; attempt++ {
		sale = &models.Venda{
			UnidadeID:  in.UnidadeID,
			ClienteID:  in.ClienteID,
			Status:     string(domain.SaleConcluida),
			ValorTotal: total,
		}

		guides = make([]models.Guia, 0, len(in.Items))
		for _, it := range in.Items {
			guides = append(guides, models.Guia{
				UnidadeID:          in.UnidadeID,
				ClienteID:          in.ClienteID,
				PrestadorID:        it.PrestadorID,
				ServicoID:          it.ServicoID,
				Status:             string(domain.StatusEmitida),
				DataEmissao:        now,
				Valor:              it.Valor,
				CodigoAutenticacao: uc.newCode(),
			})
		}

		err = uc.repo.CreateSaleWithGuides(ctx, sale, guides)
		if !errors.Is(err, domain.ErrDuplicateCode) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	sale.Guias = guides

	uc.audit.Dispatch(audit.Event{
		UnidadeID: in.UnidadeID,
		UserID:    audit.UserFrom(ctx),
		Actor:     string(domain.ActorUnidade),
		Action:    "sale_created",
		Entity:    "venda",
		EntityID:  sale.ID,
		Metadata: map[string]any{
			"guias":       len(guides),
			"valor_total": total.StringFixed(2),
		},
	})

	return sale, nil
}

func newAuthCode() string {
	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return code[:authCodeLength]
}

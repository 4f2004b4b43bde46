package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/agendaja-guias/internal/audit"
	"github.com/BruksfildServices01/agendaja-guias/internal/cache"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/dto"
	"github.com/BruksfildServices01/agendaja-guias/internal/httperr"
	"github.com/BruksfildServices01/agendaja-guias/internal/httpresp"
	"github.com/BruksfildServices01/agendaja-guias/internal/middleware"
	ucGuia "github.com/BruksfildServices01/agendaja-guias/internal/usecase/guia"
)

// ======================================================
// HANDLER
// ======================================================

type GuiaHandler struct {
	issue   *ucGuia.IssueGuides
	list    *ucGuia.ListGuides
	get     *ucGuia.GetGuide
	order   *ucGuia.ListOrderGuides
	update  *ucGuia.UpdateGuideStatus
	cancel  *ucGuia.CancelOrder
	reverse *ucGuia.ReverseOrder

	cache cache.Store
	log   zerolog.Logger
}

func NewGuiaHandler(
	issue *ucGuia.IssueGuides,
	list *ucGuia.ListGuides,
	get *ucGuia.GetGuide,
	order *ucGuia.ListOrderGuides,
	update *ucGuia.UpdateGuideStatus,
	cancel *ucGuia.CancelOrder,
	reverse *ucGuia.ReverseOrder,
	store cache.Store,
	log zerolog.Logger,
) *GuiaHandler {
	if store == nil {
		store = cache.Noop{}
	}
	return &GuiaHandler{
		issue:   issue,
		list:    list,
		get:     get,
		order:   order,
		update:  update,
		cancel:  cancel,
		reverse: reverse,
		cache:   store,
		log:     log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type IssueSaleRequest struct {
	ClienteID string                 `json:"cliente_id" binding:"required"`
	Itens     []IssueSaleItemRequest `json:"itens" binding:"required,min=1,dive"`
}

type IssueSaleItemRequest struct {
	PrestadorID string          `json:"prestador_id" binding:"required"`
	ServicoID   string          `json:"servico_id" binding:"required"`
	Valor       decimal.Decimal `json:"valor"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

type principal struct {
	userID      string
	unidadeID   string
	prestadorID string
	actor       domain.Actor
}

func principalFrom(c *gin.Context) principal {
	actor, _ := c.Get(middleware.ContextActor)
	a, _ := actor.(domain.Actor)
	return principal{
		userID:      c.GetString(middleware.ContextUserID),
		unidadeID:   c.GetString(middleware.ContextUnidadeID),
		prestadorID: c.GetString(middleware.ContextPrestadorID),
		actor:       a,
	}
}

// scopePrestador devolve o prestador que limita a leitura, ou "" para a unidade.
func (p principal) scopePrestador() string {
	if p.actor == domain.ActorPrestador {
		return p.prestadorID
	}
	return ""
}

func (p principal) context(c *gin.Context) context.Context {
	return audit.WithUser(c.Request.Context(), p.userID)
}

// authorize garante que a guia é da unidade do token e, para prestador, dele mesmo.
// Guias fora do escopo respondem como não encontradas.
func (h *GuiaHandler) authorize(c *gin.Context, p principal, guideID string) (dto.GuiaDTO, bool) {
	g, err := h.get.Execute(c.Request.Context(), guideID, p.unidadeID)
	if err == nil && p.actor == domain.ActorPrestador && g.PrestadorID != p.prestadorID {
		err = domain.ErrGuideNotFound
	}
	if err != nil {
		h.respondError(c, err)
		return dto.GuiaDTO{}, false
	}
	return g, true
}

func (h *GuiaHandler) invalidate(ctx context.Context, guideIDs []string, saleIDs ...string) {
	keys := cache.KeysForGuides(guideIDs, saleIDs...)
	if err := h.cache.Invalidate(ctx, keys...); err != nil {
		h.log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

func (h *GuiaHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrGuideNotFound):
		httperr.NotFound(c, "guide_not_found", "Guia não encontrada.")
	case errors.Is(err, domain.ErrSaleNotFound):
		httperr.NotFound(c, "sale_not_found", "Venda não encontrada.")
	case errors.Is(err, domain.ErrInvalidTransition):
		httperr.Unprocessable(c, "invalid_transition", "Transição de status não permitida.")
	case errors.Is(err, domain.ErrInvalidStatus):
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
	case errors.Is(err, domain.ErrInvalidActor):
		httperr.BadRequest(c, "invalid_actor", "Perfil inválido.")
	case errors.Is(err, domain.ErrDuplicateCode):
		httperr.Conflict(c, "duplicate_auth_code", "Código de autenticação já utilizado.")
	case httperr.Code(err) != "":
		httperr.BadRequest(c, httperr.Code(err), "Dados inválidos.")
	default:
		h.log.Error().Err(err).
			Str("request_id", c.GetString(middleware.ContextRequestID)).
			Str("path", c.FullPath()).
			Msg("guide operation failed")
		httperr.Internal(c, "internal_error", "Erro ao processar a guia.")
	}
}

func parseStatuses(raw string) ([]domain.Status, error) {
	if raw == "" {
		return nil, nil
	}

	var out []domain.Status
	for _, part := range strings.Split(raw, ",") {
		st, ok := domain.ParseStatus(strings.TrimSpace(part))
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		out = append(out, st)
	}
	return out, nil
}

// ======================================================
// CREATE SALE
// ======================================================

func (h *GuiaHandler) IssueSale(c *gin.Context) {
	p := principalFrom(c)

	var req IssueSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := ucGuia.IssueGuidesInput{
		UnidadeID: p.unidadeID,
		ClienteID: req.ClienteID,
	}
	for _, it := range req.Itens {
		in.Items = append(in.Items, ucGuia.IssueGuideItem{
			PrestadorID: it.PrestadorID,
			ServicoID:   it.ServicoID,
			Valor:       it.Valor,
		})
	}

	sale, err := h.issue.Execute(p.context(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ids := make([]string, 0, len(sale.Guias))
	for _, g := range sale.Guias {
		ids = append(ids, g.ID)
	}
	h.invalidate(c.Request.Context(), ids, sale.ID)

	httpresp.Created(c, sale)
}

// ======================================================
// READ
// ======================================================

func (h *GuiaHandler) List(c *gin.Context) {
	p := principalFrom(c)

	statuses, err := parseStatuses(c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	filter := domain.ListFilter{
		UnidadeID:     p.unidadeID,
		PrestadorID:   c.Query("prestador_id"),
		AgendamentoID: c.Query("agendamento_id"),
		Statuses:      statuses,
	}
	if prestadorID := p.scopePrestador(); prestadorID != "" {
		filter.PrestadorID = prestadorID
	}

	out, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *GuiaHandler) Get(c *gin.Context) {
	g, ok := h.authorize(c, principalFrom(c), c.Param("id"))
	if !ok {
		return
	}
	httpresp.OK(c, g)
}

func (h *GuiaHandler) Order(c *gin.Context) {
	p := principalFrom(c)
	if _, ok := h.authorize(c, p, c.Param("id")); !ok {
		return
	}

	out, err := h.order.Execute(c.Request.Context(), c.Param("id"), p.unidadeID, p.scopePrestador())
	if err != nil {
		h.respondError(c, err)
		return
	}
	httpresp.List(c, out)
}

// ======================================================
// STATUS
// ======================================================

func (h *GuiaHandler) UpdateStatus(c *gin.Context) {
	p := principalFrom(c)
	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if _, ok := h.authorize(c, p, id); !ok {
		return
	}

	g, err := h.update.Execute(p.context(c), id, domain.Status(req.Status), p.actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidate(c.Request.Context(), []string{g.ID}, g.AgendamentoID)

	httpresp.OK(c, gin.H{
		"id":             g.ID,
		"status":         g.Status,
		"agendamento_id": g.AgendamentoID,
		"proximos":       domain.AllowedNext(domain.Status(g.Status), p.actor),
	})
}

// ======================================================
// ORDER CASCADE
// ======================================================

func (h *GuiaHandler) CancelOrder(c *gin.Context) {
	p := principalFrom(c)
	id := c.Param("id")

	if _, ok := h.authorize(c, p, id); !ok {
		return
	}

	var opts []ucGuia.CascadeOption
	if prestadorID := p.scopePrestador(); prestadorID != "" {
		opts = append(opts, ucGuia.ForPrestador(prestadorID))
	}

	res, err := h.cancel.Execute(p.context(c), id, p.actor, opts...)
	h.invalidate(c.Request.Context(), res.GuideIDs, res.SaleID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	msg := "Pedido cancelado."
	if res.Partial() {
		msg = fmt.Sprintf("%d de %d guias canceladas. Revise o pedido.", res.Affected, res.Total)
	}
	httpresp.OK(c, dto.NewCancelOrderDTO(res, msg))
}

func (h *GuiaHandler) ReverseOrder(c *gin.Context) {
	p := principalFrom(c)
	id := c.Param("id")

	if _, ok := h.authorize(c, p, id); !ok {
		return
	}

	res, err := h.reverse.Execute(p.context(c), id)
	h.invalidate(c.Request.Context(), res.GuideIDs, res.SaleID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	msg := "Pedido estornado."
	if res.Partial() {
		msg = fmt.Sprintf("%d de %d guias estornadas. Revise o pedido.", res.Affected, res.Total)
	}
	httpresp.OK(c, dto.NewReverseOrderDTO(res, msg))
}

// ======================================================
// STATUS TABLE
// ======================================================

// Transitions expõe a tabela do ator autenticado para a interface montar os botões.
func (h *GuiaHandler) Transitions(c *gin.Context) {
	p := principalFrom(c)

	out := make(map[domain.Status][]domain.Status)
	for _, st := range domain.AllStatuses() {
		out[st] = domain.AllowedNext(st, p.actor)
	}
	httpresp.OK(c, gin.H{
		"actor":       p.actor,
		"transitions": out,
	})
}

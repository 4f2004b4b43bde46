package guia

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/agendaja-guias/internal/httperr"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

var (
	ErrInvalidTransition = httperr.ErrBusiness("invalid_transition")
	ErrInvalidStatus     = httperr.ErrBusiness("invalid_status")
	ErrInvalidActor      = httperr.ErrBusiness("invalid_actor")
	ErrGuideNotFound     = httperr.ErrBusiness("guide_not_found")
	ErrSaleNotFound      = httperr.ErrBusiness("sale_not_found")
	ErrDuplicateCode     = httperr.ErrBusiness("duplicate_auth_code")
)

// ===============================
// Domain Actions
// ===============================

// Transition valida a mudança contra a tabela do ator e carimba o campo de data do novo status.
func Transition(g *models.Guia, to Status, actor Actor, now time.Time) error {
	from := Status(g.Status)
	if !IsTransitionAllowed(from, to, actor) {
		return fmt.Errorf("%w: %s -> %s (%s)", ErrInvalidTransition, from, to, actor)
	}

	g.Status = string(to)
	stamp(g, to, now)
	return nil
}

// StampedColumn é a coluna de data preenchida ao entrar no status, ou "" se nenhuma.
func StampedColumn(to Status) string {
	switch to {
	case StatusRealizada:
		return "data_realizacao"
	case StatusFaturada:
		return "data_faturamento"
	case StatusPaga:
		return "data_pagamento"
	case StatusCancelada:
		return "data_cancelamento"
	case StatusEstornada:
		return "data_estorno"
	case StatusExpirada:
		return "data_expiracao"
	}
	return ""
}

func stamp(g *models.Guia, to Status, now time.Time) {
	t := now
	switch to {
	case StatusRealizada:
		g.DataRealizacao = &t
	case StatusFaturada:
		g.DataFaturamento = &t
	case StatusPaga:
		g.DataPagamento = &t
	case StatusCancelada:
		g.DataCancelamento = &t
	case StatusEstornada:
		g.DataEstorno = &t
	}
}

// Expire marca a guia como expirada de forma persistível. Só vale para emitida com janela vencida.
func Expire(g *models.Guia, now time.Time) bool {
	if Status(g.Status) != StatusEmitida || !IsExpired(g.DataEmissao, now) {
		return false
	}
	exp := ExpiresAt(g.DataEmissao)
	g.Status = string(StatusExpirada)
	g.DataExpiracao = &exp
	return true
}

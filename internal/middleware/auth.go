package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/agendaja-guias/internal/config"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/httperr"
)

const (
	ContextUserID      = "userID"
	ContextUnidadeID   = "unidadeID"
	ContextPrestadorID = "prestadorID"
	ContextActor       = "actor"
)

// AuthMiddleware valida o Bearer token. O papel do token ("prestador" ou "unidade")
// vira o ator usado nas regras de transição.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Token não informado.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token inválido.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_claims", "Token inválido.")
			return
		}

		userID, ok1 := claims["sub"].(string)
		unidadeID, ok2 := claims["unidadeId"].(string)
		role, _ := claims["role"].(string)
		if !ok1 || !ok2 || userID == "" || unidadeID == "" {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Token inválido.")
			return
		}

		actor, ok := domain.ParseActor(role)
		if !ok {
			httperr.Abort(c, http.StatusForbidden, "invalid_actor", "Perfil sem acesso às guias.")
			return
		}

		prestadorID, _ := claims["prestadorId"].(string)
		if actor == domain.ActorPrestador && prestadorID == "" {
			prestadorID = userID
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUnidadeID, unidadeID)
		c.Set(ContextPrestadorID, prestadorID)
		c.Set(ContextActor, actor)

		c.Next()
	}
}

// RequireActor restringe a rota aos atores informados.
func RequireActor(actors ...domain.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := c.Get(ContextActor)
		for _, a := range actors {
			if actor == a {
				c.Next()
				return
			}
		}
		httperr.Abort(c, http.StatusForbidden, "forbidden_actor", "Operação não permitida para este perfil.")
	}
}

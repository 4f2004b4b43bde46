package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe devolve a identidade extraída do token.
func (h *MeHandler) GetMe(c *gin.Context) {
	p := principalFrom(c)
	if p.userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":      p.userID,
		"unidade_id":   p.unidadeID,
		"prestador_id": p.prestadorID,
		"actor":        p.actor,
	})
}

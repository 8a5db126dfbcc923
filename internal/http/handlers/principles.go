package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnlens/internal/analysis/principles"
	"github.com/yungbote/learnlens/internal/domain"
	"github.com/yungbote/learnlens/internal/http/response"
)

type PrincipleHandler struct {
	weights map[domain.PrincipleID]float64
}

func NewPrincipleHandler(weights map[domain.PrincipleID]float64) *PrincipleHandler {
	return &PrincipleHandler{weights: weights}
}

// List returns the principles in evaluation order with effective weights.
func (h *PrincipleHandler) List(c *gin.Context) {
	response.RespondOK(c, gin.H{"principles": principles.Catalogue(h.weights)})
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/constants"
	"github.com/mingu600/tapu-simu/internal/factory"
)

// ListPokemon returns every species known to the loaded dex.
func (h *BattleHandler) ListPokemon(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"species": h.dex.SpeciesList()})
}

// ListMoves returns every move known to the loaded dex.
func (h *BattleHandler) ListMoves(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"moves": h.dex.Moves()})
}

// CreateCustomPokemon builds a battle-ready Pokemon from a species name and
// an optional competitive spread (level, nature, IVs, EVs, moves).
func (h *BattleHandler) CreateCustomPokemon(c *gin.Context) {
	var req factory.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p, err := factory.Build(h.dex, req)
	if err != nil {
		var vErr *battle.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: vErr.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pokemon": p})
}

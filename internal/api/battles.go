package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/constants"
	"github.com/mingu600/tapu-simu/internal/engine"
	"github.com/mingu600/tapu-simu/internal/logging"
	"github.com/mingu600/tapu-simu/internal/service"
)

// sessionResponse is the common wire shape for a session and its state.
type sessionResponse struct {
	SessionID    string        `json:"session_id"`
	StateVersion uint64        `json:"state_version"`
	Turn         int           `json:"turn"`
	State        *battle.State `json:"state"`
}

func newSessionResponse(sess *battle.Session, st *battle.State) sessionResponse {
	return sessionResponse{
		SessionID:    sess.SessionUUID,
		StateVersion: sess.StateVersion,
		Turn:         st.Turn,
		State:        st,
	}
}

// sessionIDParam extracts and validates the session id path parameter.
// Session ids are always server-generated UUIDs, so anything else is a bad
// request rather than a lookup miss.
func sessionIDParam(c *gin.Context) (string, bool) {
	id := c.Param("sessionID")
	if err := uuid.Validate(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidSessionID})
		return "", false
	}
	return id, true
}

// CreateBattle creates a new battle session from a full initial state.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var st battle.State
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, err := h.svc.CreateSession(&st)
	if err != nil {
		h.respondError(c, err, constants.ErrFailedPersistSession)
		return
	}
	c.JSON(http.StatusCreated, newSessionResponse(sess, &st))
}

// GetBattle returns the session and its current state.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	sess, st, err := h.svc.GetSession(id)
	if err != nil {
		h.respondError(c, err, constants.ErrFailedPersistSession)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(sess, st))
}

// LegalOptions returns the labeled legal choices for both sides.
func (h *BattleHandler) LegalOptions(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	res, err := h.svc.LegalOptions(id)
	if err != nil {
		h.respondError(c, err, constants.ErrFailedGenerateOptions)
		return
	}
	c.JSON(http.StatusOK, res)
}

type generateRequest struct {
	SideOne battle.Choice `json:"side_one"`
	SideTwo battle.Choice `json:"side_two"`
}

// GenerateInstructions resolves one turn into probability-weighted
// instruction sets without mutating the session state.
func (h *BattleHandler) GenerateInstructions(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sets, err := h.svc.GenerateInstructions(id, req.SideOne, req.SideTwo)
	if err != nil {
		h.respondError(c, err, constants.ErrFailedGenerateOutcomes)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id":       id,
		"instruction_sets": sets,
	})
}

type applyRequest struct {
	SetIndex int `json:"set_index"`
}

// ApplyInstructions commits one generated instruction set to the state.
func (h *BattleHandler) ApplyInstructions(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, st, err := h.svc.ApplyInstructions(id, req.SetIndex)
	if err != nil {
		h.respondError(c, err, constants.ErrFailedPersistSession)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(sess, st))
}

// GetState returns only the battle state.
func (h *BattleHandler) GetState(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	_, st, err := h.svc.GetSession(id)
	if err != nil {
		h.respondError(c, err, constants.ErrFailedPersistSession)
		return
	}
	c.JSON(http.StatusOK, st)
}

// ReplaceState overwrites the session state wholesale (rollback).
func (h *BattleHandler) ReplaceState(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	var st battle.State
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, err := h.svc.ReplaceState(id, &st)
	if err != nil {
		h.respondError(c, err, constants.ErrFailedPersistSession)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(sess, &st))
}

// respondError maps service and validation errors to HTTP status codes.
// fallback is the client-facing message for errors with no specific mapping.
func (h *BattleHandler) respondError(c *gin.Context, err error, fallback string) {
	var vErr *battle.ValidationError
	var iErr *engine.InvariantError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
	case errors.Is(err, service.ErrNoPendingInstructions):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoPendingInstructions})
	case errors.Is(err, service.ErrStaleInstructions):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrStaleInstructions})
	case errors.Is(err, service.ErrInstructionOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInstructionOutOfRange})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: vErr.Error()})
	case errors.As(err, &iErr):
		logging.Error("turn resolution invariant violated", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternalInvariant})
	default:
		logging.Error("battle request failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}

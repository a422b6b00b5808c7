package api

import (
	"github.com/mingu600/tapu-simu/internal/dex"
	"github.com/mingu600/tapu-simu/internal/service"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	svc *service.BattleService
	dex *dex.Dex
	hub *StateHub
}

// NewBattleHandler creates a BattleHandler and wires the websocket state hub
// into the service's state-change notifications.
func NewBattleHandler(svc *service.BattleService, d *dex.Dex) *BattleHandler {
	h := &BattleHandler{svc: svc, dex: d, hub: NewStateHub()}
	svc.SetStateListener(h.hub.BroadcastState)
	return h
}

package constants

// Centralized constants for env keys, routes and shared JSON keys.
const (
	// Environment variable keys
	EnvConfigPath = "TAPU_CONFIG"
	EnvDBPath     = "TAPU_DB"
	EnvAddr       = "TAPU_ADDR"

	// Shared JSON response keys
	JSONKeyError = "error"
)

// Routes used by the backend router
const (
	RouteAPIPrefix           = "/api"
	RouteBattles             = "/battles"
	RouteBattleByID          = "/battles/:sessionID"
	RouteBattleLegalOptions  = "/battles/:sessionID/legal-options"
	RouteBattleInstructions  = "/battles/:sessionID/instructions"
	RouteBattleApply         = "/battles/:sessionID/apply"
	RouteBattleState         = "/battles/:sessionID/state"
	RouteBattleWS            = "/battles/:sessionID/ws"
	RoutePokemon             = "/pokemon"
	RoutePokemonCreateCustom = "/pokemon/create-custom"
	RouteMoves               = "/moves"
	RouteVersion             = "/version"
)

// Error strings returned to clients
const (
	ErrInvalidSessionID       = "invalid session id"
	ErrSessionNotFound        = "battle session not found"
	ErrInvalidRequest         = "invalid request payload"
	ErrNoPendingInstructions  = "no instruction sets generated for this session"
	ErrStaleInstructions      = "instruction sets were generated against a previous state"
	ErrInstructionOutOfRange  = "instruction set index out of range"
	ErrFailedPersistSession   = "failed to persist battle session"
	ErrInternalInvariant      = "internal invariant violation during turn resolution"
	ErrFailedGenerateOptions  = "failed to compute legal options"
	ErrFailedGenerateOutcomes = "failed to generate turn outcomes"

	// Log field keys
	LogFieldSessionID = "session_id"
	LogFieldAddr      = "addr"
)

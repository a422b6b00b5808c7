package battle

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Session is the persisted record of one battle session. The state itself
// is stored as a JSON blob: it is replaced wholesale on rollback, so a
// relational decomposition would buy nothing and complicate the overwrite.
type Session struct {
	gorm.Model
	SessionUUID string `json:"session_id" gorm:"uniqueIndex"`
	// StateJSON holds the serialized State. Omitted from JSON responses;
	// handlers return the decoded state instead.
	StateJSON []byte `json:"-" gorm:"column:state_json;type:blob"`
	// StateVersion increments on every apply or replace. Instruction
	// proposals are keyed to the version they were generated against so a
	// rollback can never leave a stale proposal applicable.
	StateVersion uint64    `json:"state_version"`
	LastActivity time.Time `json:"last_activity"`
}

// TableName overrides the default GORM table name so the persisted table is
// `battle_sessions`.
func (Session) TableName() string { return "battle_sessions" }

// DecodeState unmarshals the persisted battle state.
func (s *Session) DecodeState() (*State, error) {
	var st State
	if err := json.Unmarshal(s.StateJSON, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// EncodeState serializes st into the session record.
func (s *Session) EncodeState(st *State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	s.StateJSON = b
	return nil
}

package events

import (
	"encoding/json"
	"time"
)

// Ledger event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// LedgerEvent notifies downstream consumers of a transaction change.
// Deleted events carry only the id.
type LedgerEvent struct {
	Action     string    `json:"action"`
	ID         int64     `json:"id"`
	Type       string    `json:"type,omitempty"`
	Category   string    `json:"category,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewLedgerEvent(action string, id int64) LedgerEvent {
	return LedgerEvent{
		Action:     action,
		ID:         id,
		OccurredAt: time.Now(),
	}
}

func (e LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return LedgerEvent{}, err
	}
	return e, nil
}

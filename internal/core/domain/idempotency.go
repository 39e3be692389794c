package domain

import (
	"time"

	"github.com/google/uuid"
)

// Idempotent operations.
const (
	OpIssue    = "issue"
	OpRedeem   = "redeem"
	OpCheckout = "checkout"
)

// IdempotencyLog stores the response of a mutating call so a retry with the
// same key gets the same answer instead of a second ledger entry.
type IdempotencyLog struct {
	Key          string    `json:"key"` // Format: "actor_id:operation:client_key"
	EntryID      uuid.UUID `json:"entry_id"`
	ResponseJSON []byte    `json:"response_json"`
	CreatedAt    time.Time `json:"created_at"`
}

// BuildIdempotencyKey scopes a client key to the initiating actor and operation.
func BuildIdempotencyKey(actorID uuid.UUID, operation, clientKey string) string {
	return actorID.String() + ":" + operation + ":" + clientKey
}

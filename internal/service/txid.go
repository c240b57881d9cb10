package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TxIDSource implements ports.TxIDGenerator. IDs embed a millisecond
// timestamp for human-readable ordering and a UUID fragment for collision
// resistance.
type TxIDSource struct{}

// NewTxIDSource creates a transaction-ID generator.
func NewTxIDSource() *TxIDSource {
	return &TxIDSource{}
}

// NewTxID returns a fresh transaction-group identifier.
func (g *TxIDSource) NewTxID() string {
	return fmt.Sprintf("TX-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

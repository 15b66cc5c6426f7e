package ledger

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces candidate transaction ids. Uniqueness within a list is
// enforced by the ledger, so generators only need to be collision resistant.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator issues "<prefix><n>" ids from a monotonic counter.
type SequenceGenerator struct {
	Prefix string
	n      atomic.Int64
}

func (g *SequenceGenerator) NewID() string {
	return g.Prefix + strconv.FormatInt(g.n.Add(1), 10)
}

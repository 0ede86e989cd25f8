// Package idgen mints identifiers for item instances and timed effects
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock_generator.go -package=idgenmock github.com/KirkDiggler/rpg-progression/internal/pkg/idgen Generator

// Generator hands out identifiers. Implementations must be safe for
// concurrent use.
type Generator interface {
	Generate() string
}

// UUIDGenerator produces random UUIDs, optionally prefixed
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a UUID generator. An empty prefix yields bare UUIDs.
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate returns prefix_<uuid>
func (g *UUIDGenerator) Generate() string {
	id := uuid.NewString()
	if g.prefix == "" {
		return id
	}
	return g.prefix + "_" + id
}

// Sequential produces prefix_1, prefix_2, ... and is deterministic, which
// keeps test expectations and simulated sessions stable.
type Sequential struct {
	mu      sync.Mutex
	prefix  string
	counter uint64
}

// NewSequential creates a sequential generator
func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

// Generate returns the next ID in the sequence
func (g *Sequential) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++
	return g.format(g.counter)
}

// Observe advances the counter past an ID this generator could have
// produced, so restored IDs are never handed out again. IDs with another
// prefix are ignored.
func (g *Sequential) Observe(id string) {
	n, ok := g.parse(id)
	if !ok {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if n > g.counter {
		g.counter = n
	}
}

func (g *Sequential) format(n uint64) string {
	if g.prefix == "" {
		return strconv.FormatUint(n, 10)
	}
	return fmt.Sprintf("%s_%d", g.prefix, n)
}

func (g *Sequential) parse(id string) (uint64, bool) {
	digits := id
	if g.prefix != "" {
		rest, found := strings.CutPrefix(id, g.prefix+"_")
		if !found {
			return 0, false
		}
		digits = rest
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

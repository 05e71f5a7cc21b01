package services

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/yigit/isluportal/internal/pkg/apperrors"
)

// idSuffixSpace is the number of four-digit suffixes under one prefix
const idSuffixSpace = 10000

// randomIDAttempts bounds the random draws before falling back to a scan
const randomIDAttempts = 64

// IDGenerator draws student IDs of the form <prefix><4 digits>
type IDGenerator struct {
	prefix string
	mu     sync.Mutex
	rng    *rand.Rand
}

// NewIDGenerator creates an IDGenerator. A nil rng uses a randomly seeded source.
func NewIDGenerator(prefix string, rng *rand.Rand) *IDGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &IDGenerator{prefix: prefix, rng: rng}
}

// Next returns an ID that is not in existing. Random suffixes are tried
// first; when those keep colliding the whole space is scanned from a random
// offset, so a free suffix is always found if one exists.
func (g *IDGenerator) Next(existing map[string]struct{}) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 0; i < randomIDAttempts; i++ {
		id := g.format(g.rng.IntN(idSuffixSpace))
		if _, taken := existing[id]; !taken {
			return id, nil
		}
	}

	start := g.rng.IntN(idSuffixSpace)
	for i := 0; i < idSuffixSpace; i++ {
		id := g.format((start + i) % idSuffixSpace)
		if _, taken := existing[id]; !taken {
			return id, nil
		}
	}
	return "", apperrors.ErrIDSpaceExhausted
}

func (g *IDGenerator) format(suffix int) string {
	return fmt.Sprintf("%s%04d", g.prefix, suffix)
}

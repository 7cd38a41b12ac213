package game

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness used for dice and deck shuffles.
// Implementations do not need to be safe for concurrent use.
type Source interface {
	Intn(n int) int
}

// NewRandSource returns a pseudo-random source seeded with seed.
func NewRandSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

func defaultSeed() int64 {
	return time.Now().UnixNano()
}

// lockedSource serializes access to a Source shared by every session.
type lockedSource struct {
	lock sync.Mutex
	src  Source
}

func (s *lockedSource) Intn(n int) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.src.Intn(n)
}

func rollDie(src Source) int {
	return src.Intn(6) + 1
}

func shuffle(src Source, n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}

package session

import (
	"math/rand/v2"

	"github.com/abhisek/stockmaster/internal/questions"
)

// Source is the randomness used for sampling. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a randomly seeded source.
func NewSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// SeededSource returns a deterministic source for reproducible sessions.
func SeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle permutes xs in place using Fisher-Yates, so every permutation
// is equally likely given a uniform source.
func Shuffle[T any](xs []T, src Source) {
	for i := len(xs) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// Sample returns min(count, len(pool)) distinct questions from pool in
// random order. pool itself is not modified. An empty pool or a
// non-positive count yields nil.
func Sample(pool []questions.Question, count int, src Source) []questions.Question {
	if len(pool) == 0 || count <= 0 {
		return nil
	}
	out := append([]questions.Question(nil), pool...)
	Shuffle(out, src)
	if count < len(out) {
		out = out[:count:count]
	}
	return out
}

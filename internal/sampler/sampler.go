// Package sampler issues unordered image pairs without replacement.
//
// A PairSampler remembers every pair it has handed out and refuses to repeat
// one until Reset. Exhaustion is decided by count: once C(n,2) pairs have been
// issued for a pool of n images, Next reports done.
package sampler

import (
	"math/rand/v2"

	"github.com/RitAreaSciencePark/ExO/internal/domain"
)

// PairSampler tracks the pairs already issued in the current session.
//
// Not safe for concurrent use. The application service owns the single lock
// that serializes sampling with the archive transition; a pool that changes
// while a call is in flight is a known, accepted race under the single-rater
// assumption.
type PairSampler struct {
	used map[domain.PairKey]struct{}
}

func New() *PairSampler {
	return &PairSampler{used: make(map[domain.PairKey]struct{})}
}

// Next draws two distinct pool members uniformly at random, retrying until it
// finds a pair not issued before. The returned pair keeps the drawn order;
// membership tracking uses the canonical sorted key. Returns false when the
// pool is exhausted (or has fewer than two members, where C(n,2)=0).
func (s *PairSampler) Next(pool []string) (domain.Pair, bool) {
	n := len(pool)
	if n < 2 {
		return domain.Pair{}, false
	}

	total := n * (n - 1) / 2
	remaining := total - len(s.used)
	if remaining <= 0 {
		return domain.Pair{}, false
	}

	// Rejection sampling is cheap while unused pairs are plentiful. The
	// attempt cap grows with density so we switch to exact enumeration
	// instead of spinning as exhaustion approaches.
	maxDraws := 4 * (total / remaining)
	if maxDraws < 8 {
		maxDraws = 8
	}

	for range maxDraws {
		a := rand.IntN(n)
		b := rand.IntN(n - 1)
		if b >= a {
			b++
		}
		p := domain.Pair{Left: pool[a], Right: pool[b]}
		key := p.Key()
		if _, seen := s.used[key]; seen {
			continue
		}
		s.used[key] = struct{}{}
		return p, true
	}

	return s.nextFromComplement(pool)
}

// nextFromComplement enumerates every unused pair and picks one uniformly.
// O(n^2), only reached when the used set is dense.
func (s *PairSampler) nextFromComplement(pool []string) (domain.Pair, bool) {
	var unused []domain.PairKey
	for i := range pool {
		for j := i + 1; j < len(pool); j++ {
			key := domain.Pair{Left: pool[i], Right: pool[j]}.Key()
			if _, seen := s.used[key]; !seen {
				unused = append(unused, key)
			}
		}
	}
	if len(unused) == 0 {
		return domain.Pair{}, false
	}

	key := unused[rand.IntN(len(unused))]
	s.used[key] = struct{}{}

	p := domain.Pair{Left: key[0], Right: key[1]}
	if rand.IntN(2) == 1 {
		p.Left, p.Right = p.Right, p.Left
	}
	return p, true
}

// Used reports how many pairs have been issued since the last reset.
func (s *PairSampler) Used() int {
	return len(s.used)
}

// Reset clears the used set, starting a fresh session.
func (s *PairSampler) Reset() {
	clear(s.used)
}

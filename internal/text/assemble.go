package text

import (
	"errors"
	"math/rand"
	"strings"
)

// ErrEmptyPool indicates a word list with no words.
var ErrEmptyPool = errors.New("word pool is empty")

// Assembler builds practice texts from word pools.
type Assembler struct {
	rnd *rand.Rand
}

// NewAssembler returns an Assembler using the given random source.
func NewAssembler(rnd *rand.Rand) *Assembler {
	return &Assembler{rnd: rnd}
}

// Assemble returns exactly count space-joined words drawn from pool. The
// pool is shuffled (Fisher-Yates) and repeated until count words are
// available. With trailingSpace a single space follows the last word, so
// word-count sessions can type the closing boundary of the final word.
func (a *Assembler) Assemble(pool []string, count int, trailingSpace bool) (string, error) {
	if len(pool) == 0 {
		return "", ErrEmptyPool
	}
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	a.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	words := make([]string, 0, count)
	for len(words) < count {
		words = append(words, shuffled...)
	}
	out := strings.Join(words[:count], " ")
	if trailingSpace {
		out += " "
	}
	return out, nil
}

package world

import (
	"math/rand"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Roller is the slice of *rand.Rand the simulation rolls against.
type Roller interface {
	Float64() float64
}

// DeterministicSeed derives a per-consumer seed from the root seed, so each
// system gets its own reproducible stream.
func DeterministicSeed(root int64, label string) int64 {
	d := xxhash.New()
	_, _ = d.WriteString(strconv.FormatInt(root, 10))
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(label)
	sum := d.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

func NewDeterministicRNG(root int64, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeed(root, label)))
}

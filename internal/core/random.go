package core

import (
	"hash/fnv"
	"math/rand"
	"strconv"
)

// LabeledSeed derives a stable seed for one subsystem from the run seed.
// Different labels give independent streams so adding draws to one spawner
// never shifts another.
func LabeledSeed(seed int64, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(strconv.FormatInt(seed, 10)))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// NewLabeledRNG returns a deterministic RNG for the given subsystem label.
func NewLabeledRNG(seed int64, label string) *rand.Rand {
	return rand.New(rand.NewSource(LabeledSeed(seed, label)))
}

// RandRange returns a uniform float in [min, max). Returns min when max <= min.
func RandRange(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

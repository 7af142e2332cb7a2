package terrain

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

func seededRNG(seed int64, salt string) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic generation behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, salt+":a"), seedWord(seed, salt+":b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// offsetSeed derives an independent seed for an auxiliary noise patch so
// that features sampling their own noise stay visually decorrelated from
// the base height field built from the same user seed.
func offsetSeed(seed int64, salt string) int64 {
	return int64(seedWord(seed, salt))
}

package ids

import "hash/fnv"

// HashNode returns a fixed, portable 64-bit hash of a NodeId, used as the
// additive term in a Candidate's checksum. Two processes hashing the same
// NodeId always agree, since it is built on the standard FNV-1a constants
// rather than Go's randomized map seed.
func HashNode(id NodeId) uint64 {
	return fnv1a(uint64(id))
}

// HashGraph returns a fixed, portable 64-bit hash of a GraphId, used to seed
// the beam's PRNG so that search over a given graph is deterministic.
func HashGraph(id GraphId) uint64 {
	return fnv1a(uint64(id))
}

// fnv1a hashes the eight bytes of v with the standard library's FNV-1a
// implementation.
func fnv1a(v uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

package common

import (
	"golang.org/x/crypto/blake2b"
)

// ComputeHash computes the BLAKE2b hash of the given data
func ComputeHash(data []byte) []byte {
	hash := blake2b.Sum256(data)
	return hash[:]
}

func Blake2Hash(data []byte) Hash {
	return BytesToHash(ComputeHash(data))
}

// ShuffleSeed derives the per-block draw seed from the chain entropy and
// the block number: blake2b(entropy || LE64(number)).
func ShuffleSeed(entropy Hash, number uint64) Hash {
	return Blake2Hash(append(entropy.Bytes(), Uint64ToBytes(number)...))
}

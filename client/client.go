// Package client defines the chain-facing boundary of the ordering SDK:
// the extrinsic and block shapes, the ChainClient interface collaborators
// implement, and the order audit that checks a block against the fair
// interleaving of its pool.
package client

import (
	"context"

	"github.com/colorfulnotion/fairdex/common"
)

// SignedExtrinsic is a pool entry as seen by the ordering layer. Payload
// bytes are opaque here; only identity and signer matter for ordering.
type SignedExtrinsic struct {
	Signer  common.Hash `json:"signer"`
	Nonce   uint64      `json:"nonce"`
	Method  string      `json:"method"`
	Payload []byte      `json:"payload,omitempty"`
}

// ID returns the extrinsic identity hash.
func (e SignedExtrinsic) ID() common.Hash {
	data := make([]byte, 0, common.HashLength+8+len(e.Method)+len(e.Payload))
	data = append(data, e.Signer.Bytes()...)
	data = append(data, common.Uint64ToBytes(e.Nonce)...)
	data = append(data, e.Method...)
	data = append(data, e.Payload...)
	return common.Blake2Hash(data)
}

// Block is an ordered batch of extrinsics plus the entropy that seeded its
// ordering.
type Block struct {
	Number     uint64            `json:"number"`
	Hash       common.Hash       `json:"hash"`
	Parent     common.Hash       `json:"parent"`
	Entropy    common.Hash       `json:"entropy"`
	Extrinsics []SignedExtrinsic `json:"extrinsics"`
}

// ChainClient is the surface the SDK needs from a chain node. Implementations
// may sit on any transport; MockChain provides an in-memory one for tests and
// tools.
type ChainClient interface {
	// SubmitExtrinsic places an extrinsic into the pending pool and returns
	// its identity hash.
	SubmitExtrinsic(ctx context.Context, ext SignedExtrinsic) (common.Hash, error)

	// PendingExtrinsics returns the current pool in arrival order.
	PendingExtrinsics(ctx context.Context) ([]SignedExtrinsic, error)

	// BlockByNumber returns the block at the given number.
	BlockByNumber(ctx context.Context, number uint64) (*Block, error)

	// QueryStorage reads a raw storage value.
	QueryStorage(ctx context.Context, key []byte) ([]byte, error)
}

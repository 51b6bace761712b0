package client

import (
	"context"
	"sync"

	"github.com/colorfulnotion/fairdex/common"
	"github.com/colorfulnotion/fairdex/log"
	"github.com/colorfulnotion/fairdex/sdkerrors"
)

// MockChain is an in-memory ChainClient. It keeps a pending pool in arrival
// order and builds blocks whose extrinsic order follows the fair
// interleaving, which makes it a well-behaved counterparty for the auditor.
type MockChain struct {
	mu      sync.Mutex
	pool    []SignedExtrinsic
	blocks  []*Block
	storage map[string][]byte
}

func NewMockChain() *MockChain {
	return &MockChain{storage: make(map[string][]byte)}
}

func (m *MockChain) SubmitExtrinsic(ctx context.Context, ext SignedExtrinsic) (common.Hash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pending := range m.pool {
		if pending.Signer == ext.Signer && pending.Nonce == ext.Nonce {
			return common.Hash{}, sdkerrors.ErrCDuplicateNonce
		}
	}
	m.pool = append(m.pool, ext)
	id := ext.ID()
	log.Trace(log.ClientMonitoring, "extrinsic accepted", "id", id.String_short(), "pool", len(m.pool))
	return id, nil
}

func (m *MockChain) PendingExtrinsics(ctx context.Context) ([]SignedExtrinsic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SignedExtrinsic(nil), m.pool...), nil
}

func (m *MockChain) BlockByNumber(ctx context.Context, number uint64) (*Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if number >= uint64(len(m.blocks)) {
		return nil, sdkerrors.ErrCBlockNotFound
	}
	return m.blocks[number], nil
}

func (m *MockChain) QueryStorage(ctx context.Context, key []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.storage[string(key)]
	if !ok {
		return nil, sdkerrors.ErrCStorageNotFound
	}
	return append([]byte(nil), val...), nil
}

// SetStorage stores a raw value, for test setup.
func (m *MockChain) SetStorage(key, val []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storage[string(key)] = append([]byte(nil), val...)
}

// BuildBlock drains the pending pool into a new block ordered by the fair
// interleaving under the given entropy.
func (m *MockChain) BuildBlock(entropy common.Hash) (*Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	number := uint64(len(m.blocks))
	seed := common.ShuffleSeed(entropy, number)
	ordered, err := ExpectedOrder(m.pool, seed)
	if err != nil {
		return nil, err
	}

	parent := common.Hash{}
	if number > 0 {
		parent = m.blocks[number-1].Hash
	}
	blk := &Block{
		Number:     number,
		Parent:     parent,
		Entropy:    entropy,
		Extrinsics: ordered,
	}
	blk.Hash = blockHash(blk)

	m.blocks = append(m.blocks, blk)
	m.pool = m.pool[:0]
	log.Debug(log.ClientMonitoring, "block built", "number", number, "extrinsics", len(ordered))
	return blk, nil
}

func blockHash(blk *Block) common.Hash {
	data := make([]byte, 0, 2*common.HashLength+8+common.HashLength*len(blk.Extrinsics))
	data = append(data, blk.Parent.Bytes()...)
	data = append(data, common.Uint64ToBytes(blk.Number)...)
	data = append(data, blk.Entropy.Bytes()...)
	for _, ext := range blk.Extrinsics {
		id := ext.ID()
		data = append(data, id.Bytes()...)
	}
	return common.Blake2Hash(data)
}

package client

import (
	"context"

	"github.com/colorfulnotion/fairdex/common"
	"github.com/colorfulnotion/fairdex/log"
	"github.com/colorfulnotion/fairdex/sdkerrors"
	"github.com/colorfulnotion/fairdex/shuffle"
	"github.com/colorfulnotion/fairdex/xoshiro"
)

// AuditReport records the outcome of checking a block's extrinsic order
// against the fair interleaving of the pool it was built from.
type AuditReport struct {
	BlockNumber uint64            `json:"block_number"`
	BlockHash   common.Hash       `json:"block_hash"`
	Seed        common.Hash       `json:"seed"`
	Expected    []SignedExtrinsic `json:"expected"`
	Matched     bool              `json:"matched"`
	Reason      string            `json:"reason,omitempty"` // error name on mismatch
	FirstBadIdx int               `json:"first_bad_idx"`    // -1 when matched
}

// ExpectedOrder computes the interleaving a fair block builder must emit for
// the given pool snapshot and seed. The pool must be in arrival order.
func ExpectedOrder(pool []SignedExtrinsic, seed common.Hash) ([]SignedExtrinsic, error) {
	src, err := xoshiro.New(seed.Bytes())
	if err != nil {
		return nil, err
	}
	items := make([]shuffle.Item[common.Hash, SignedExtrinsic], len(pool))
	for i, ext := range pool {
		items[i] = shuffle.Item[common.Hash, SignedExtrinsic]{Key: ext.Signer, Value: ext}
	}
	return shuffle.Interleave(items, src), nil
}

// AuditBlockOrder recomputes the fair interleaving of pool under the block's
// seed and compares it with the block's extrinsics. The report carries the
// expected order either way; on deviation the error is ErrROrderMismatch and
// FirstBadIdx points at the first deviating slot.
func AuditBlockOrder(pool []SignedExtrinsic, blk *Block) (*AuditReport, error) {
	if common.IsNilHash(blk.Entropy) {
		log.Warn(log.AuditMonitoring, "block carries zero entropy, seed is degenerate", "block", blk.Number)
	}
	seed := common.ShuffleSeed(blk.Entropy, blk.Number)
	report := &AuditReport{
		BlockNumber: blk.Number,
		BlockHash:   blk.Hash,
		Seed:        seed,
		FirstBadIdx: -1,
	}

	expected, err := ExpectedOrder(pool, seed)
	if err != nil {
		return nil, err
	}
	report.Expected = expected

	if len(blk.Extrinsics) != len(expected) {
		log.Warn(log.AuditMonitoring, "extrinsic count mismatch", "block", blk.Number, "pool", len(expected), "block_count", len(blk.Extrinsics))
		report.FirstBadIdx = min(len(blk.Extrinsics), len(expected))
		report.Reason = sdkerrors.GetErrorName(sdkerrors.ErrRLengthMismatch)
		return report, sdkerrors.ErrRLengthMismatch
	}
	for i := range expected {
		if expected[i].ID() != blk.Extrinsics[i].ID() {
			report.FirstBadIdx = i
			report.Reason = sdkerrors.GetErrorName(sdkerrors.ErrROrderMismatch)
			log.Warn(log.AuditMonitoring, "order deviation", "block", blk.Number, "idx", i, "expected", expected[i].ID().String_short(), "got", blk.Extrinsics[i].ID().String_short())
			return report, sdkerrors.ErrROrderMismatch
		}
	}

	report.Matched = true
	log.Debug(log.AuditMonitoring, "block order verified", "block", blk.Number, "extrinsics", len(expected), "seed", seed.String_short())
	return report, nil
}

// Auditor drives order audits against a live chain client.
type Auditor struct {
	chain ChainClient
}

func NewAuditor(chain ChainClient) *Auditor {
	return &Auditor{chain: chain}
}

// AuditBlock fetches the block at number and audits it against the supplied
// pool snapshot.
func (a *Auditor) AuditBlock(ctx context.Context, number uint64, pool []SignedExtrinsic) (*AuditReport, error) {
	blk, err := a.chain.BlockByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return AuditBlockOrder(pool, blk)
}

package sdkerrors

import (
	"errors"
	"strings"
)

// Draw Source (S) Errors
var (
	ErrSInvalidSeed = errors.New("S1|InvalidSeed: Seed must be exactly 32 bytes.")
	ErrSZeroRange   = errors.New("S2|ZeroRange: Draw requested with an empty range.")
)

// Reconstructor (R) Errors
var (
	ErrRLengthMismatch = errors.New("R1|LengthMismatch: Block carries a different extrinsic count than the pool.")
	ErrROrderMismatch  = errors.New("R2|OrderMismatch: Block extrinsic order deviates from the fair interleaving.")
)

// Client (C) Errors
var (
	ErrCBlockNotFound   = errors.New("C1|BlockNotFound: No block recorded at the requested number.")
	ErrCUnknownMethod   = errors.New("C2|UnknownMethod: RPC method is not supported.")
	ErrCStorageNotFound = errors.New("C3|StorageNotFound: No value stored under the requested key.")
	ErrCDuplicateNonce  = errors.New("C4|DuplicateNonce: Extrinsic reuses a pending nonce for its signer.")
)

// GetErrorName extracts the error name from the error message.
func GetErrorName(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if idx := strings.Index(msg, "|"); idx >= 0 {
		msg = msg[idx+1:]
	}
	if idx := strings.Index(msg, ":"); idx >= 0 {
		return msg[:idx]
	}
	return msg
}

// GetErrorCode extracts the short code before the '|' separator.
func GetErrorCode(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if idx := strings.Index(msg, "|"); idx >= 0 {
		return msg[:idx]
	}
	return ""
}

package sdkerrors

import (
	"errors"
	"testing"
)

func TestGetErrorName(t *testing.T) {
	cases := []struct {
		err  error
		name string
	}{
		{ErrSInvalidSeed, "InvalidSeed"},
		{ErrROrderMismatch, "OrderMismatch"},
		{ErrCBlockNotFound, "BlockNotFound"},
		{errors.New("plain failure"), "plain failure"},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := GetErrorName(tc.err); got != tc.name {
			t.Fatalf("GetErrorName(%v): expected %q, got %q", tc.err, tc.name, got)
		}
	}
}

func TestGetErrorCode(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{ErrSInvalidSeed, "S1"},
		{ErrRLengthMismatch, "R1"},
		{ErrCDuplicateNonce, "C4"},
		{errors.New("plain failure"), ""},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := GetErrorCode(tc.err); got != tc.code {
			t.Fatalf("GetErrorCode(%v): expected %q, got %q", tc.err, tc.code, got)
		}
	}
}

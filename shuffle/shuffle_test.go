package shuffle

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/colorfulnotion/fairdex/xoshiro"
)

type InterleaveTestCase struct {
	Name   string                 `json:"name"`
	Seed   string                 `json:"seed"`
	Items  []Item[string, uint32] `json:"items"`
	Output []uint32               `json:"output"`
	Draws  int                    `json:"draws"`
}

// countingSource wraps a draw source and counts consumed draws.
type countingSource struct {
	src   DrawSource
	draws int
}

func (c *countingSource) NextInRange(bound uint32) uint32 {
	c.draws++
	return c.src.NextInRange(bound)
}

// shuffle_test reads a JSON file of test cases and performs the tests.
func TestInterleave(t *testing.T) {
	data, err := os.ReadFile("testdata/shuffle_tests.json")
	if err != nil {
		t.Fatalf("Failed to read testcases file: %v", err)
	}

	var testCases []InterleaveTestCase
	if err := json.Unmarshal(data, &testCases); err != nil {
		t.Fatalf("Failed to parse testcases JSON: %v", err)
	}

	for _, tc := range testCases {
		seedBytes, err := hex.DecodeString(tc.Seed)
		if err != nil {
			t.Errorf("Invalid seed in test case %s: %v", tc.Name, err)
			continue
		}
		src, err := xoshiro.New(seedBytes)
		if err != nil {
			t.Errorf("Bad seed in test case %s: %v", tc.Name, err)
			continue
		}
		counter := &countingSource{src: src}

		merged := Interleave(tc.Items, counter)

		if len(merged) != len(tc.Output) {
			t.Errorf("Test case %s: expected %v, got %v", tc.Name, tc.Output, merged)
			continue
		}
		for i := range merged {
			if merged[i] != tc.Output[i] {
				t.Errorf("Test case %s: expected %v, got %v", tc.Name, tc.Output, merged)
				break
			}
		}
		if counter.draws != tc.Draws {
			t.Errorf("Test case %s: expected %d draws, got %d", tc.Name, tc.Draws, counter.draws)
		}
		fmt.Printf("Passed %s len=%d draws=%d\n", tc.Name, len(merged), counter.draws)
	}
}

func mustSource(t *testing.T, fill byte) *xoshiro.Source {
	t.Helper()
	seed := make([]byte, xoshiro.SeedSize)
	for i := range seed {
		seed[i] = fill + byte(i)
	}
	src, err := xoshiro.New(seed)
	if err != nil {
		t.Fatalf("xoshiro.New failed: %v", err)
	}
	return src
}

// Values sharing a key must come out in arrival order, for every seed.
func TestInterleaveKeepsPerKeyOrder(t *testing.T) {
	items := make([]Item[string, int], 0)
	keys := []string{"k0", "k1", "k2", "k3", "k4"}
	counts := []int{7, 1, 12, 3, 5}
	for i, k := range keys {
		for n := 0; n < counts[i]; n++ {
			items = append(items, Item[string, int]{Key: k, Value: i*100 + n})
		}
	}

	for fill := byte(0); fill < 32; fill++ {
		merged := Interleave(items, mustSource(t, fill))
		if len(merged) != len(items) {
			t.Fatalf("fill %d: expected %d values, got %d", fill, len(items), len(merged))
		}
		next := make(map[int]int) // key index -> next expected offset
		for _, v := range merged {
			ki, off := v/100, v%100
			if off != next[ki] {
				t.Fatalf("fill %d: key k%d out of order: expected offset %d, got %d", fill, ki, next[ki], off)
			}
			next[ki]++
		}
	}
}

func TestInterleaveDeterministic(t *testing.T) {
	items := []Item[string, int]{
		{"alice", 1}, {"bob", 2}, {"alice", 3}, {"charlie", 4}, {"bob", 5},
	}
	a := Interleave(items, mustSource(t, 9))
	b := Interleave(items, mustSource(t, 9))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %d: %v vs %v", i, a, b)
		}
	}
}

func TestInterleaveEmpty(t *testing.T) {
	merged := Interleave([]Item[string, int](nil), mustSource(t, 0))
	if len(merged) != 0 {
		t.Fatalf("expected empty output for nil items, got %v", merged)
	}
	merged = Interleave([]Item[string, int]{}, mustSource(t, 1))
	if len(merged) != 0 {
		t.Fatalf("expected empty output for empty items, got %v", merged)
	}
}

// zeroSource always draws 0, pinning the cyclic pass to a fixed rotation.
type zeroSource struct{}

func (zeroSource) NextInRange(bound uint32) uint32 { return 0 }

func TestInterleaveScriptedSource(t *testing.T) {
	items := []Item[string, string]{
		{"a", "a0"}, {"a", "a1"},
		{"b", "b0"}, {"b", "b1"},
		{"c", "c0"}, {"c", "c1"},
	}
	// all-zero draws rotate [a b c] to [b c a] every round
	merged := Interleave(items, zeroSource{})
	expected := []string{"b0", "c0", "a0", "b1", "c1", "a1"}
	for i := range expected {
		if merged[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, merged)
		}
	}
}

func TestSeedSensitivity(t *testing.T) {
	items := make([]Item[string, int], 0, 27)
	for _, k := range []string{"a", "b", "c"} {
		for n := 0; n < 9; n++ {
			items = append(items, Item[string, int]{Key: k, Value: len(items)})
		}
	}

	differing := 0
	const flips = 64
	for bit := 0; bit < flips; bit++ {
		seed := make([]byte, xoshiro.SeedSize)
		for i := range seed {
			seed[i] = byte(i * 7)
		}
		base, err := xoshiro.New(seed)
		if err != nil {
			t.Fatalf("xoshiro.New failed: %v", err)
		}
		a := Interleave(items, base)

		seed[bit/8] ^= 1 << (bit % 8)
		flipped, err := xoshiro.New(seed)
		if err != nil {
			t.Fatalf("xoshiro.New failed: %v", err)
		}
		b := Interleave(items, flipped)

		for i := range a {
			if a[i] != b[i] {
				differing++
				break
			}
		}
	}
	// a handful of coincidental matches is tolerable, wholesale agreement is not
	if differing < flips-4 {
		t.Fatalf("only %d of %d bit flips changed the output", differing, flips)
	}
}

// The struct key type exercises the comparable constraint the way the audit
// path uses it (hash-keyed queues).
func TestInterleaveStructKeys(t *testing.T) {
	type signer struct{ id [4]byte }
	a, b := signer{[4]byte{1}}, signer{[4]byte{2}}
	items := []Item[signer, string]{
		{a, "a0"}, {b, "b0"}, {a, "a1"}, {b, "b1"},
	}
	merged := Interleave(items, mustSource(t, 3))
	if len(merged) != 4 {
		t.Fatalf("expected 4 values, got %d", len(merged))
	}
	seen := make(map[string]bool)
	for _, v := range merged {
		seen[v] = true
	}
	for _, want := range []string{"a0", "a1", "b0", "b1"} {
		if !seen[want] {
			t.Fatalf("missing value %s in %v", want, merged)
		}
	}
}

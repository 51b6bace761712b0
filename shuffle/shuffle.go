// Package shuffle reconstructs the fair interleaving of keyed items: values
// sharing a key keep their arrival order, while a seeded draw source decides
// how the keys take turns.
package shuffle

// DrawSource yields bounded draws that drive the interleaving.
type DrawSource interface {
	NextInRange(bound uint32) uint32
}

// Item is a keyed value awaiting placement.
type Item[K comparable, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// Interleave merges the items into a single sequence. Items are grouped
// into per-key FIFO queues in first-seen key order; each round applies a
// seeded cyclic permutation to the keys that still hold values and pops one
// value per key in the permuted order. Identical inputs and draw sources
// produce identical output.
func Interleave[K comparable, V any](items []Item[K, V], src DrawSource) []V {
	queues := make(map[K][]V)
	order := make([]K, 0)
	for _, item := range items {
		if _, seen := queues[item.Key]; !seen {
			order = append(order, item.Key)
		}
		queues[item.Key] = append(queues[item.Key], item.Value)
	}

	out := make([]V, 0, len(items))
	for len(out) < len(items) {
		// Rebuild the live key list each round in first-seen order; the
		// previous round's permutation must not carry over.
		live := make([]K, 0, len(order))
		for _, k := range order {
			if len(queues[k]) > 0 {
				live = append(live, k)
			}
		}
		cyclicPass(live, src)
		for _, k := range live {
			q := queues[k]
			out = append(out, q[0])
			queues[k] = q[1:]
		}
	}
	return out
}

// cyclicPass permutes keys in place with one draw per position, walking from
// the back with an exclusive bound. The exclusive bound makes every result a
// single cycle, so no key holds its slot two rounds running. A single key
// consumes no draws; the bound-1 draw at i=1 is still consumed.
func cyclicPass[K comparable](keys []K, src DrawSource) {
	for i := len(keys) - 1; i >= 1; i-- {
		j := src.NextInRange(uint32(i))
		keys[i], keys[j] = keys[j], keys[i]
	}
}

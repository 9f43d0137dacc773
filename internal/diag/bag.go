package diag

import (
	"cmp"
	"math"
	"slices"

	"fortio.org/safecast"
)

// Bag collects diagnostics up to a fixed limit; Add past the limit is
// dropped and reported as false.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// clampLimit squeezes n into the uint16 limit range.
func clampLimit(n int) uint16 {
	limit, err := safecast.Conv[uint16](n)
	switch {
	case err == nil:
		return limit
	case n < 0:
		return 0
	default:
		return math.MaxUint16
	}
}

// NewBag creates a bag that keeps at most max diagnostics.
// Limits beyond the uint16 range are clamped.
func NewBag(max int) *Bag {
	limit := clampLimit(max)
	return &Bag{items: make([]Diagnostic, 0, min(int(limit), 64)), max: limit}
}

func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.max }

func (b *Bag) Len() int { return len(b.items) }

// HasErrors reports whether any diagnostic is at least SevError.
func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

// Items returns the bag's own slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends other's diagnostics, raising the limit so that all of
// them fit (up to the uint16 ceiling).
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.max = max(b.max, clampLimit(len(b.items)+len(other.items)))
	room := int(b.max) - len(b.items)
	b.items = append(b.items, other.items[:min(room, len(other.items))]...)
}

// Sort orders by file, span, severity (errors first) and code. The sort
// is stable, so equal diagnostics keep their report order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.File, y.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup drops repeated diagnostics, keeping the first of each; see DedupReporter.
func (b *Bag) Dedup() {
	seen := make(map[identity]struct{}, len(b.items))
	kept := b.items[:0]
	for i := range b.items {
		id := b.items[i].identity()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		kept = append(kept, b.items[i])
	}
	b.items = kept
}

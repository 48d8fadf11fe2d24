package model

import "time"

// DateRange returns the earliest and latest valid timestamps across every
// record collection in the batch. Zero timestamps are ignored. Both returns
// are zero when the batch holds no dated records.
func (b *Batch) DateRange() (min, max time.Time) {
	consider := func(t time.Time) {
		if t.IsZero() {
			return
		}
		if min.IsZero() || t.Before(min) {
			min = t
		}
		if max.IsZero() || t.After(max) {
			max = t
		}
	}

	for _, e := range b.Events {
		consider(e.EventTime)
	}
	for _, m := range b.Manifests {
		consider(m.ManifestTime)
	}
	for _, l := range b.Allocations {
		consider(l.When())
	}
	for _, f := range b.FluidActions {
		consider(f.StartTime)
	}
	for _, v := range b.Voyages {
		consider(v.StartDate)
	}
	return min, max
}

// Size returns the total record count across all collections.
func (b *Batch) Size() int {
	return len(b.Events) + len(b.Manifests) + len(b.Allocations) +
		len(b.FluidActions) + len(b.Voyages)
}

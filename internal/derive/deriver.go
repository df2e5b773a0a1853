package derive

import (
	"github.com/verte-zerg/uelist/internal/catalog"
	"github.com/verte-zerg/uelist/internal/model"
)

// Recorder receives one event per (re)computation.
type Recorder interface {
	FilterComputed(c model.Criteria, matched int)
	StatsComputed(s model.Stats)
}

// View is the derived state consumed by the list.
type View struct {
	Filtered []model.Ue
	Stats    model.Stats
}

// Deriver produces the View for the current state.
type Deriver interface {
	Derive(c *catalog.Catalog, criteria model.Criteria, selected int) View
}

// FilterKey is the true dependency set of the filtered sequence.
type FilterKey struct {
	Catalog *catalog.Catalog
	Version uint64
	Query   string
	MinEcts int
}

// StatsKey is the dependency set of the statistics. Generation identifies the
// filtered result they were computed from.
type StatsKey struct {
	Generation uint64
	Selected   int
}

type nopRecorder struct{}

func (nopRecorder) FilterComputed(model.Criteria, int) {}
func (nopRecorder) StatsComputed(model.Stats)          {}

// Naive recomputes everything on every call.
type Naive struct {
	rec Recorder
}

// NewNaive returns a deriver without caching.
func NewNaive(rec Recorder) *Naive {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Naive{rec: rec}
}

// Derive implements Deriver.
func (n *Naive) Derive(c *catalog.Catalog, criteria model.Criteria, selected int) View {
	filtered := Filter(c.Records(), criteria)
	n.rec.FilterComputed(criteria, len(filtered))
	stats := ComputeStats(filtered, selected)
	n.rec.StatsComputed(stats)
	return View{Filtered: filtered, Stats: stats}
}

type filterResult struct {
	records    []model.Ue
	generation uint64
}

// Memoized recomputes the filtered sequence only when FilterKey changes and
// the statistics only when StatsKey changes.
type Memoized struct {
	rec        Recorder
	generation uint64
	filter     Memo[FilterKey, filterResult]
	stats      Memo[StatsKey, model.Stats]
}

// NewMemoized returns a caching deriver.
func NewMemoized(rec Recorder) *Memoized {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Memoized{rec: rec}
}

// Derive implements Deriver.
func (m *Memoized) Derive(c *catalog.Catalog, criteria model.Criteria, selected int) View {
	fkey := FilterKey{Catalog: c, Version: c.Version(), Query: criteria.Query, MinEcts: criteria.MinEcts}
	filtered := m.filter.Get(fkey, func() filterResult {
		records := Filter(c.Records(), criteria)
		m.generation++
		m.rec.FilterComputed(criteria, len(records))
		return filterResult{records: records, generation: m.generation}
	})
	skey := StatsKey{Generation: filtered.generation, Selected: selected}
	stats := m.stats.Get(skey, func() model.Stats {
		s := ComputeStats(filtered.records, selected)
		m.rec.StatsComputed(s)
		return s
	})
	return View{Filtered: filtered.records, Stats: stats}
}

// Reset drops both cached entries, as when the catalog is replaced.
func (m *Memoized) Reset() {
	m.filter.Reset()
	m.stats.Reset()
}

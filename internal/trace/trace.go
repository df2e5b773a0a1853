// Package trace records render and recomputation events of the list views.
//
// Every event is counted and written as one zap line so a student can tail the
// trace file and count re-renders the way they would read a browser console.
package trace

import (
	"go.uber.org/zap"

	"github.com/verte-zerg/uelist/internal/model"
)

// Tracer counts events for one mounted list view. It is not safe for
// concurrent use; the Bubble Tea event loop is its only caller.
type Tracer struct {
	log       *zap.Logger
	variant   model.Variant
	counts    model.Counts
	frameRows int
}

// New returns a tracer writing to log. A nil logger disables output but keeps
// the counters.
func New(log *zap.Logger, variant model.Variant) *Tracer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracer{
		log:     log.With(zap.String("variant", string(variant))),
		variant: variant,
	}
}

// Variant returns the list variant being traced.
func (t *Tracer) Variant() model.Variant {
	return t.variant
}

// BeginFrame starts counting the rows of one View pass.
func (t *Tracer) BeginFrame() {
	t.frameRows = 0
}

// EndFrame publishes the row count of the finished View pass.
func (t *Tracer) EndFrame() {
	t.counts.LastFrameRows = t.frameRows
}

// RowRendered records one row actually rendered.
func (t *Tracer) RowRendered(ue model.Ue) {
	t.frameRows++
	t.counts.RowRenders++
	t.log.Debug("row rendered", zap.Int("id", ue.ID), zap.String("code", ue.Code))
}

// FilterComputed records one filtering pass.
func (t *Tracer) FilterComputed(c model.Criteria, matched int) {
	t.counts.FilterRuns++
	t.log.Info("filter computed",
		zap.String("query", c.Query),
		zap.Int("min_ects", c.MinEcts),
		zap.Int("matched", matched),
	)
}

// StatsComputed records one statistics pass.
func (t *Tracer) StatsComputed(s model.Stats) {
	t.counts.StatsRuns++
	t.log.Info("stats computed",
		zap.Int("total", s.Total),
		zap.Int("selected", s.Selected),
		zap.Int("total_ects", s.TotalEcts),
	)
}

// CatalogGenerated records the initial load.
func (t *Tracer) CatalogGenerated(records int) {
	t.log.Info("catalog generated", zap.Int("records", records))
}

// ForcedRender records a user-requested re-render.
func (t *Tracer) ForcedRender() {
	t.counts.ForcedRenders++
	t.log.Info("forced render", zap.Int("count", t.counts.ForcedRenders))
}

// Deleted records a confirmed deletion.
func (t *Tracer) Deleted(id int) {
	t.counts.Deletions++
	t.log.Info("record deleted", zap.Int("id", id))
}

// Counts returns a snapshot of the counters.
func (t *Tracer) Counts() model.Counts {
	return t.counts
}

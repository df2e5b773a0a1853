package derive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/uelist/internal/catalog"
	"github.com/verte-zerg/uelist/internal/generator"
	"github.com/verte-zerg/uelist/internal/model"
)

type countingRecorder struct {
	filters int
	stats   int
}

func (r *countingRecorder) FilterComputed(model.Criteria, int) { r.filters++ }
func (r *countingRecorder) StatsComputed(model.Stats)          { r.stats++ }

func TestFilterAllRecords(t *testing.T) {
	ues := generator.Generate(1000)
	filtered := Filter(ues, model.Criteria{})
	require.Len(t, filtered, 1000)

	stats := ComputeStats(filtered, 0)
	assert.Equal(t, 1000, stats.Total)
	assert.Equal(t, 3496, stats.TotalEcts)
	assert.InDelta(t, 3.496, stats.AvgEcts, 1e-9)
}

func TestFilterExactCode(t *testing.T) {
	ues := generator.Generate(1000)
	filtered := Filter(ues, model.Criteria{Query: "UE00001"})
	require.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].ID)

	stats := ComputeStats(filtered, 4)
	assert.Equal(t, 4, stats.Selected)
}

func TestFilterCaseInsensitive(t *testing.T) {
	ues := generator.Generate(50)
	lower := Filter(ues, model.Criteria{Query: "séminaire de biologie"})
	upper := Filter(ues, model.Criteria{Query: "SÉMINAIRE DE BIOLOGIE"})
	require.NotEmpty(t, lower)
	assert.Equal(t, lower, upper)
	for _, ue := range lower {
		assert.Equal(t, "Biologie", ue.Department)
	}

	codes := Filter(ues, model.Criteria{Query: "ue0004"})
	assert.Equal(t, []int{40, 41, 42, 43, 44, 45, 46, 47, 48, 49}, IDs(codes))
}

func TestFilterThreshold(t *testing.T) {
	ues := generator.Generate(120)
	filtered := Filter(ues, model.Criteria{MinEcts: 5})
	for _, ue := range filtered {
		idx := ue.ID - 1
		assert.GreaterOrEqual(t, idx%6+1, 5)
	}
	assert.Len(t, filtered, 40)
}

func TestFilterIsIdempotent(t *testing.T) {
	ues := generator.Generate(300)
	criteria := model.Criteria{Query: "niveau 3", MinEcts: 3}
	once := Filter(ues, criteria)
	twice := Filter(once, criteria)
	assert.Equal(t, once, twice)
	for _, ue := range once {
		assert.True(t, Matches(ue, criteria))
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	filtered := Filter(generator.Generate(100), model.Criteria{Query: "physique"})
	ids := IDs(filtered)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, 3)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 3, stats.Selected)
	assert.Equal(t, 0, stats.TotalEcts)
	assert.Zero(t, stats.AvgEcts)
	assert.Empty(t, stats.ByDepartment)
}

func TestComputeStatsByDepartmentFirstSeenOrder(t *testing.T) {
	stats := ComputeStats(generator.Generate(12), 0)
	require.Len(t, stats.ByDepartment, 5)
	assert.Equal(t, model.DepartmentCount{Department: "Informatique", Count: 3}, stats.ByDepartment[0])
	assert.Equal(t, model.DepartmentCount{Department: "Mathématiques", Count: 3}, stats.ByDepartment[1])
	assert.Equal(t, model.DepartmentCount{Department: "Biologie", Count: 2}, stats.ByDepartment[4])
}

func TestNaiveRecomputesEveryCall(t *testing.T) {
	rec := &countingRecorder{}
	d := NewNaive(rec)
	c := catalog.New(generator.Generate(20))
	for i := 0; i < 3; i++ {
		d.Derive(c, model.Criteria{}, 0)
	}
	assert.Equal(t, 3, rec.filters)
	assert.Equal(t, 3, rec.stats)
}

func TestMemoizedRecomputesOnKeyChange(t *testing.T) {
	rec := &countingRecorder{}
	d := NewMemoized(rec)
	c := catalog.New(generator.Generate(20))

	first := d.Derive(c, model.Criteria{}, 0)
	d.Derive(c, model.Criteria{}, 0)
	assert.Equal(t, 1, rec.filters)
	assert.Equal(t, 1, rec.stats)

	// selection size only affects statistics
	view := d.Derive(c, model.Criteria{}, 2)
	assert.Equal(t, 1, rec.filters)
	assert.Equal(t, 2, rec.stats)
	assert.Equal(t, 2, view.Stats.Selected)
	assert.Equal(t, first.Filtered, view.Filtered)

	d.Derive(c, model.Criteria{Query: "chimie"}, 2)
	assert.Equal(t, 2, rec.filters)
	assert.Equal(t, 3, rec.stats)

	require.True(t, c.Delete(3))
	view = d.Derive(c, model.Criteria{Query: "chimie"}, 2)
	assert.Equal(t, 3, rec.filters)
	assert.Equal(t, 4, rec.stats)
	assert.NotContains(t, IDs(view.Filtered), 3)

	other := catalog.New(generator.Generate(20))
	d.Derive(other, model.Criteria{Query: "chimie"}, 2)
	assert.Equal(t, 4, rec.filters, "a different catalog is a different key")
}

func TestMemoizedReset(t *testing.T) {
	rec := &countingRecorder{}
	d := NewMemoized(rec)
	c := catalog.New(generator.Generate(5))
	d.Derive(c, model.Criteria{}, 0)
	d.Reset()
	d.Derive(c, model.Criteria{}, 0)
	assert.Equal(t, 2, rec.filters)
}

func TestMemoGet(t *testing.T) {
	var m Memo[string, int]
	calls := 0
	compute := func() int {
		calls++
		return calls
	}
	assert.Equal(t, 1, m.Get("a", compute))
	assert.Equal(t, 1, m.Get("a", compute))
	assert.Equal(t, 2, m.Get("b", compute))
	assert.Equal(t, 3, m.Get("a", compute))
}

func TestMemoizedMatchesNaive(t *testing.T) {
	c := catalog.New(generator.Generate(300))
	naive := NewNaive(nil)
	memo := NewMemoized(nil)
	steps := []struct {
		criteria model.Criteria
		selected int
		deleteID int
	}{
		{criteria: model.Criteria{}},
		{criteria: model.Criteria{MinEcts: 3}, selected: 4},
		{criteria: model.Criteria{Query: "projet"}, selected: 4},
		{criteria: model.Criteria{Query: "projet"}, selected: 4, deleteID: 4},
		{criteria: model.Criteria{Query: "UE0001", MinEcts: 5}},
	}
	for i, step := range steps {
		if step.deleteID != 0 {
			c.Delete(step.deleteID)
		}
		want := naive.Derive(c, step.criteria, step.selected)
		got := memo.Derive(c, step.criteria, step.selected)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("step %d: memoized view differs (-naive +memoized):\n%s", i, diff)
		}
	}
}

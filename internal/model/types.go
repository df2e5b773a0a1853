// Package model defines shared data structures.
package model

import "time"

// Ue is one course unit of the catalog.
type Ue struct {
	ID         int
	Code       string
	Title      string
	Ects       int
	Department string
}

// Criteria controls which records are visible.
type Criteria struct {
	Query   string
	MinEcts int
}

// DepartmentCount is the number of filtered records in one department.
type DepartmentCount struct {
	Department string
	Count      int
}

// Stats summarizes a filtered view.
type Stats struct {
	Total        int
	Selected     int
	TotalEcts    int
	AvgEcts      float64
	ByDepartment []DepartmentCount
}

// Variant names a list rendering strategy.
type Variant string

// List variants.
const (
	VariantNaive     Variant = "naive"
	VariantOptimized Variant = "optimized"
)

// Config defines exercise settings.
type Config struct {
	Count      int
	Overscan   int
	Tab        string
	Trace      bool
	TraceFile  string
	RecordRuns bool
}

// Counts holds the instrumentation counters of one list view.
type Counts struct {
	RowRenders    int
	LastFrameRows int
	FilterRuns    int
	StatsRuns     int
	ForcedRenders int
	Deletions     int
}

// Run captures the measurements of one list view mount.
type Run struct {
	ID        int64
	MountID   string
	Variant   Variant
	StartedAt time.Time
	EndedAt   time.Time
	Records   int
	Counts    Counts
}

// RunFilter narrows ListRuns.
type RunFilter struct {
	Variant Variant
	Last    int
}

// RunSummary aggregates runs of one variant.
type RunSummary struct {
	Variant       Variant
	Runs          int
	RowRenders    int
	FilterRuns    int
	StatsRuns     int
	ForcedRenders int
}

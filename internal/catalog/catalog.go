// Package catalog holds the in-memory record catalog and the selection set.
package catalog

import "github.com/verte-zerg/uelist/internal/model"

// Catalog is an ordered record sequence mutated only by deletion.
type Catalog struct {
	records []model.Ue
	version uint64
}

// New wraps records in generation order. The slice is owned by the catalog.
func New(records []model.Ue) *Catalog {
	return &Catalog{records: records}
}

// Records returns the current sequence. Callers must not modify it.
func (c *Catalog) Records() []model.Ue {
	if c == nil {
		return nil
	}
	return c.records
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Version identifies the current contents. It changes on every deletion.
func (c *Catalog) Version() uint64 {
	if c == nil {
		return 0
	}
	return c.version
}

// Delete removes the record with id and reports whether it existed.
// The previous Records slice stays valid for readers holding it.
func (c *Catalog) Delete(id int) bool {
	idx := c.index(id)
	if idx < 0 {
		return false
	}
	next := make([]model.Ue, 0, len(c.records)-1)
	next = append(next, c.records[:idx]...)
	next = append(next, c.records[idx+1:]...)
	c.records = next
	c.version++
	return true
}

// Contains reports whether a record with id is present.
func (c *Catalog) Contains(id int) bool {
	return c.index(id) >= 0
}

func (c *Catalog) index(id int) int {
	if c == nil {
		return -1
	}
	for i, ue := range c.records {
		if ue.ID == id {
			return i
		}
	}
	return -1
}

// DeleteRecord removes id from both the catalog and the selection.
func DeleteRecord(c *Catalog, sel *Selection, id int) bool {
	removed := c.Delete(id)
	sel.Remove(id)
	return removed
}

package dataset

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidColumn means a catalog was requested for a column the sheet does
// not carry.
var ErrInvalidColumn = errors.New("invalid column")

// DistinctValues returns the sorted distinct non-empty values of a dimension
// column. Results are cached per (sheet, column); the cache is only ever
// invalidated by a process restart, since the dataset never changes after
// Load.
func (d *Dataset) DistinctValues(rs *RecordSet, column string) ([]string, error) {
	if !rs.HasColumn(column) {
		return nil, fmt.Errorf("%w: %q not in sheet %q", ErrInvalidColumn, column, rs.Sheet)
	}

	key := rs.Sheet + "\x00" + column

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.catalogs == nil {
		d.catalogs = make(map[string][]string)
	}
	if cached, ok := d.catalogs[key]; ok {
		return cached, nil
	}

	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, r := range rs.Records {
		v := rs.Value(r, column)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)

	d.catalogs[key] = values
	return values, nil
}

// Package assignment holds the menu-to-unit assignment workflow: the
// operator's draft selection and the reconciliation of a desired assignment
// set against the rows already persisted.
package assignment

import "sort"

// Existing is a persisted assignment row reduced to what reconciliation needs.
type Existing struct {
	ID                int64
	ProductRelationID int64
}

// Delta is the outcome of reconciling one (contract, unit) pair.
type Delta struct {
	Delete []Existing
	Insert []int64
	Keep   []Existing
}

func (d Delta) Empty() bool {
	return len(d.Delete) == 0 && len(d.Insert) == 0
}

func (d Delta) DeleteIDs() []int64 {
	ids := make([]int64, 0, len(d.Delete))
	for _, row := range d.Delete {
		ids = append(ids, row.ID)
	}
	return ids
}

// Diff compares persisted rows with the desired product-relation ids.
// Rows in existing but not desired are deleted, desired ids without a row are
// inserted, and rows present on both sides are kept untouched so their ids
// stay stable. A relation persisted more than once keeps its first row and
// the duplicates are deleted.
func Diff(existing []Existing, desired []int64) Delta {
	want := make(map[int64]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}

	var delta Delta
	have := make(map[int64]struct{}, len(existing))
	for _, row := range existing {
		if _, dup := have[row.ProductRelationID]; dup {
			delta.Delete = append(delta.Delete, row)
			continue
		}
		have[row.ProductRelationID] = struct{}{}
		if _, ok := want[row.ProductRelationID]; ok {
			delta.Keep = append(delta.Keep, row)
		} else {
			delta.Delete = append(delta.Delete, row)
		}
	}
	for id := range want {
		if _, ok := have[id]; !ok {
			delta.Insert = append(delta.Insert, id)
		}
	}

	sort.Slice(delta.Delete, func(i, j int) bool {
		return delta.Delete[i].ProductRelationID < delta.Delete[j].ProductRelationID
	})
	sort.Slice(delta.Keep, func(i, j int) bool {
		return delta.Keep[i].ProductRelationID < delta.Keep[j].ProductRelationID
	})
	sort.Slice(delta.Insert, func(i, j int) bool { return delta.Insert[i] < delta.Insert[j] })
	return delta
}

// DiffIDs is Diff for join tables where the related id is the only payload.
func DiffIDs(existing map[int64]int64, desired []int64) Delta {
	rows := make([]Existing, 0, len(existing))
	for relatedID, rowID := range existing {
		rows = append(rows, Existing{ID: rowID, ProductRelationID: relatedID})
	}
	return Diff(rows, desired)
}

package tminuslib

import "sort"

// ItemSlice attaches the methods of sort.Interface to []*Item, sorting by
// target timestamp with unset (zero) targets last; ties break on DateAdded.
type ItemSlice []*Item

// Len returns the number of elements in the slice.
func (x ItemSlice) Len() int { return len(x) }

// Less reports whether the element at index i should sort before the element
// at index j.
func (x ItemSlice) Less(i, j int) bool {
	ti, tj := x[i].TargetAt, x[j].TargetAt
	if ti == 0 || tj == 0 {
		if ti != tj {
			return tj == 0
		}
		return x[i].DateAdded.Before(x[j].DateAdded)
	}
	if ti != tj {
		return ti < tj
	}
	return x[i].DateAdded.Before(x[j].DateAdded)
}

// Swap exchanges the elements at indices i and j.
func (x ItemSlice) Swap(i, j int) { x[i], x[j] = x[j], x[i] }

// SortItems sorts items by target timestamp, earliest first.
func SortItems(items []*Item) { sort.Sort(ItemSlice(items)) }

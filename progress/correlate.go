package progress

import "github.com/vitwit/cartcheckout/types"

// PathMap maps a marketplace order id to its path entry. It is rebuilt for
// every snapshot and must not be mutated by consumers.
type PathMap map[string]types.PathEntry

// BuildPathMap scans path in order and records every entry with an order id.
// When several entries share an order id the last one wins; use IndexPath to
// keep all of them. A nil path yields an empty map.
func BuildPathMap(path []types.PathEntry) PathMap {
	m := make(PathMap, len(path))
	for _, entry := range path {
		if entry.OrderID == "" {
			continue
		}
		m[entry.OrderID] = entry
	}
	return m
}

// Lookup returns the entries for the given order ids in id order. Unknown
// ids are skipped.
func (m PathMap) Lookup(ids types.OrderIDs) []types.PathEntry {
	if len(ids) == 0 {
		return nil
	}
	out := make([]types.PathEntry, 0, len(ids))
	for _, id := range ids {
		if entry, ok := m[id]; ok {
			out = append(out, entry)
		}
	}
	return out
}

// PathIndex keeps every path entry per order id, in path order.
type PathIndex map[string][]types.PathEntry

// IndexPath is the multi-valued counterpart of BuildPathMap.
func IndexPath(path []types.PathEntry) PathIndex {
	idx := make(PathIndex, len(path))
	for _, entry := range path {
		if entry.OrderID == "" {
			continue
		}
		idx[entry.OrderID] = append(idx[entry.OrderID], entry)
	}
	return idx
}

// Duplicates returns the order ids claimed by more than one path entry, in
// the order they first appear in path.
func (idx PathIndex) Duplicates(path []types.PathEntry) []string {
	var dups []string
	seen := make(map[string]bool)
	for _, entry := range path {
		if entry.OrderID == "" || seen[entry.OrderID] {
			continue
		}
		seen[entry.OrderID] = true
		if len(idx[entry.OrderID]) > 1 {
			dups = append(dups, entry.OrderID)
		}
	}
	return dups
}

// Last collapses the index to a PathMap with last-write-wins semantics.
func (idx PathIndex) Last() PathMap {
	m := make(PathMap, len(idx))
	for id, entries := range idx {
		m[id] = entries[len(entries)-1]
	}
	return m
}

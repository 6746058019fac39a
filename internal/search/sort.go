package search

import "sort"

// SortResults sorts results by category, then by item ID.
func SortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Item.Ref().Less(results[j].Item.Ref())
	})
}

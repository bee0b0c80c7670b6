// Package suggest ranks candidate names by edit distance, used to propose
// close agent names when a lookup fails.
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultTopN is the maximum number of suggestions returned.
const DefaultTopN = 3

// Closest returns up to topN candidates ordered by edit distance to name.
// Candidates whose distance exceeds half the longer string are considered
// unrelated and dropped. Comparison is case-insensitive.
func Closest(name string, candidates []string, topN int) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	needle := strings.ToLower(name)
	type scored struct {
		name string
		dist int
	}
	var results []scored
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(c))
		max := len(needle)
		if len(c) > max {
			max = len(c)
		}
		if d*2 <= max {
			results = append(results, scored{name: c, dist: d})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].dist < results[j].dist })

	if len(results) > topN {
		results = results[:topN]
	}
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.name
	}
	return names
}

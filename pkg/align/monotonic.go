// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package align

import "sort"

// SortBySource returns a copy of matches sorted by source index.
func SortBySource(matches []Match) []Match {
	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Source < sorted[j].Source
	})
	return sorted
}

// IsMonotonic reports whether incoming indices strictly increase once matches
// are sorted by source index.
func IsMonotonic(matches []Match) bool {
	sorted := SortBySource(matches)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Incoming <= sorted[i-1].Incoming {
			return false
		}
	}
	return true
}

// Monotonic sorts matches by source index and splits them into the longest
// run whose incoming indices strictly increase (kept) and everything else
// (dropped). Both results are sorted by source index. When several runs share
// the maximum length the one ending at the smallest incoming indices wins.
func Monotonic(matches []Match) (kept, dropped []Match) {
	sorted := SortBySource(matches)
	n := len(sorted)
	if n == 0 {
		return []Match{}, []Match{}
	}
	// tails[k] is the position in sorted of the smallest tail of any run of
	// length k+1 seen so far.
	tails := make([]int, 0, n)
	prev := make([]int, n)
	for i, m := range sorted {
		k := sort.Search(len(tails), func(t int) bool {
			return sorted[tails[t]].Incoming >= m.Incoming
		})
		if k > 0 {
			prev[i] = tails[k-1]
		} else {
			prev[i] = -1
		}
		if k == len(tails) {
			tails = append(tails, i)
		} else {
			tails[k] = i
		}
	}
	inRun := make([]bool, n)
	for i := tails[len(tails)-1]; i >= 0; i = prev[i] {
		inRun[i] = true
	}
	kept = make([]Match, 0, len(tails))
	dropped = make([]Match, 0, n-len(tails))
	for i, m := range sorted {
		if inRun[i] {
			kept = append(kept, m)
		} else {
			dropped = append(dropped, m)
		}
	}
	return kept, dropped
}

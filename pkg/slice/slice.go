// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package slice

func DuplicatedString(s []string) string {
	m := map[string]string{}
	for _, k := range s {
		if _, ok := m[k]; ok {
			return k
		}
		m[k] = k
	}
	return ""
}

func StringSliceContains(sl []string, s string) bool {
	for _, v := range sl {
		if v == s {
			return true
		}
	}
	return false
}

// CompareStringSlices splits slice against oldSlice. Unchanged and added
// follow the order of slice, removed follows the order of oldSlice.
func CompareStringSlices(slice, oldSlice []string) (unchanged, added, removed []string) {
	m := map[string]struct{}{}
	for _, col := range slice {
		m[col] = struct{}{}
	}
	oldM := map[string]struct{}{}
	for _, col := range oldSlice {
		oldM[col] = struct{}{}
	}
	for _, col := range slice {
		if _, ok := oldM[col]; !ok {
			added = append(added, col)
		} else {
			unchanged = append(unchanged, col)
		}
	}
	for _, col := range oldSlice {
		if _, ok := m[col]; !ok {
			removed = append(removed, col)
		}
	}
	return
}

// Union returns every distinct string of a followed by those of b that are
// not in a, keeping first occurrence order.
func Union(a, b []string) []string {
	seen := map[string]struct{}{}
	res := make([]string, 0, len(a)+len(b))
	for _, sl := range [][]string{a, b} {
		for _, s := range sl {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			res = append(res, s)
		}
	}
	return res
}

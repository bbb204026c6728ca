package testutils

import (
	"reflect"
	"sort"
	"testing"
)

// Compare fails the test if the slices differ, reporting the items found in
// only one of them
func Compare(t *testing.T, got, want []string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
		t.Errorf("difference %q", Difference(got, want))
	}
}

// CompareMapKeys checks that the keys of m are exactly the given names
func CompareMapKeys[V any](t *testing.T, m map[string]V, want []string) {
	t.Helper()
	got := make([]string, 0, len(m))
	for k := range m {
		got = append(got, k)
	}
	sort.Strings(got)
	sorted := append([]string(nil), want...)
	sort.Strings(sorted)
	Compare(t, got, sorted)
}

// Difference returns the sorted items present in only one of the slices
func Difference(slice1, slice2 []string) []string {
	diff := []string{}
	m := map[string]int{}

	for _, v := range slice1 {
		m[v] |= 1
	}
	for _, v := range slice2 {
		m[v] |= 2
	}

	for k, v := range m {
		if v != 3 {
			diff = append(diff, k)
		}
	}
	sort.Strings(diff)

	return diff
}

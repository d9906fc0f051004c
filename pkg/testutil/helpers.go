// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// AssertClose fails the test when got and want differ by more than tolerance.
func AssertClose(t testing.TB, label string, got, want, tolerance float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tolerance {
		t.Errorf("%s = %.6f, expected %.6f (tolerance %g)", label, got, want, tolerance)
	}
}

// Sum adds the values returned by pick for every element of items.
func Sum[T any](items []T, pick func(T) float64) float64 {
	total := 0.0
	for _, item := range items {
		total += pick(item)
	}
	return total
}

// WriteFile writes contents to name under dir and returns the full path.
func WriteFile(t testing.TB, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

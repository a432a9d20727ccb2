package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateOrInsertDiffSemantics(t *testing.T) {
	s := New()

	assert.Equal(t, 0.0, s.UpdateOrInsert("x", 5))
	assert.Equal(t, 4.0, s.UpdateOrInsert("x", 9))
	assert.Equal(t, 9.0, s.Get("x"))
}

func TestUpdateOrInsertNegativeDiff(t *testing.T) {
	s := New()

	s.UpdateOrInsert("scanned", 100)
	assert.Equal(t, -30.0, s.UpdateOrInsert("scanned", 70))
	assert.Equal(t, -30.0, s.Diff("scanned"))
}

func TestGetUnknownNameDefaultsToZero(t *testing.T) {
	s := New()
	assert.Equal(t, 0.0, s.Get("never_seen"))
	assert.Equal(t, 0.0, s.Diff("never_seen"))
}

func TestDiffAfterSingleObservation(t *testing.T) {
	s := New()
	s.UpdateOrInsert("x", 42)
	assert.Equal(t, 0.0, s.Diff("x"))
}

func TestNamesAndLen(t *testing.T) {
	s := New()
	s.UpdateOrInsert("a", 1)
	s.UpdateOrInsert("b", 2)
	s.UpdateOrInsert("a", 3)

	assert.Equal(t, 2, s.Len())
	assert.ElementsMatch(t, []string{"a", "b"}, s.Names())
}

package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	m := NewMockLogger()
	m.WithField(FieldBank, "SBI").Info("bank detected")
	m.WithError(errors.New("boom")).Warn("reader failed")
	m.Debug("plain")

	entries := m.GetEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, []Field{{Key: FieldBank, Value: "SBI"}}, entries[0].Fields)
	assert.EqualError(t, entries[1].Error, "boom")
	assert.Empty(t, entries[2].Fields)
}

func TestMockLogger_Queries(t *testing.T) {
	m := &MockLogger{}
	m.Info("one", Field{Key: FieldCount, Value: 3})
	m.Warn("two")
	m.Fatalf("three %d", 3)

	assert.True(t, m.HasEntry("INFO", "one"))
	assert.False(t, m.HasEntry("ERROR", "one"))
	assert.Len(t, m.GetEntriesByLevel("FATAL"), 1)
	assert.Equal(t, "three 3", m.GetEntriesByLevel("FATAL")[0].Message)

	v, ok := m.FieldValue("one", FieldCount)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	m.Clear()
	assert.Empty(t, m.GetEntries())
}

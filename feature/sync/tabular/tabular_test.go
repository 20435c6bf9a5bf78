package tabular

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIndex(t *testing.T) {
	ds := New("orders", []string{"A", "B", "C"}, nil)

	i, ok := ds.Index("B")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = ds.Index("MISSING")
	assert.False(t, ok)
}

func TestIndex_DuplicateColumnsKeepFirst(t *testing.T) {
	ds := New("orders", []string{"A", "B", "A"}, nil)

	i, ok := ds.Index("A")
	assert.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestValue_AbsenceHandling(t *testing.T) {
	ds := New("orders", []string{"A"}, nil)

	tests := []struct {
		name string
		cell any
	}{
		{"nil cell", nil},
		{"empty string", ""},
		{"whitespace", "   "},
		{"literal null", "null"},
		{"literal NULL", "NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ds.Value([]any{tt.cell}, "A")
			assert.False(t, ok)
		})
	}

	val, ok := ds.Value([]any{"x"}, "A")
	assert.True(t, ok)
	assert.Equal(t, "x", val)
}

func TestString(t *testing.T) {
	ds := New("orders", []string{"A", "B"}, nil)
	row := []any{" hello ", nil}

	assert.Equal(t, "hello", ds.String(row, "A", "def"))
	assert.Equal(t, "def", ds.String(row, "B", "def"))
	assert.Equal(t, "def", ds.String(row, "MISSING", "def"))
}

func TestInt(t *testing.T) {
	ds := New("orders", []string{"A", "B", "C", "D"}, nil)
	// JSON numbers decode as float64
	row := []any{float64(3), "7", "not-a-number", nil}

	assert.Equal(t, 3, ds.Int(row, "A", -1))
	assert.Equal(t, 7, ds.Int(row, "B", -1))
	assert.Equal(t, -1, ds.Int(row, "C", -1))
	assert.Equal(t, -1, ds.Int(row, "D", -1))
}

func TestBool(t *testing.T) {
	ds := New("orders", []string{"A", "B", "C", "D"}, nil)
	row := []any{"1", "true", float64(0), nil}

	assert.True(t, ds.Bool(row, "A"))
	assert.True(t, ds.Bool(row, "B"))
	assert.False(t, ds.Bool(row, "C"))
	assert.False(t, ds.Bool(row, "D"))
}

func TestSafeInt(t *testing.T) {
	tests := []struct {
		name     string
		val      any
		def      int
		expected int
	}{
		{"int", 5, -1, 5},
		{"float64", float64(9), -1, 9},
		{"numeric string", "42", -1, 42},
		{"float string", "42.9", -1, 42},
		{"garbage", "abc", -1, -1},
		{"empty", "", -1, -1},
		{"nil", nil, -1, -1},
		{"null literal", "null", -1, -1},
		{"bool", true, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeInt(tt.val, tt.def))
		})
	}
}

func TestStructurallyValid(t *testing.T) {
	ds := New("orders", []string{"A", "B"}, nil)

	assert.True(t, ds.StructurallyValid([]any{1, 2}))
	assert.False(t, ds.StructurallyValid([]any{1}))
	assert.False(t, ds.StructurallyValid([]any{1, 2, 3}))
}

func TestTime(t *testing.T) {
	ds := New("orders", []string{"A", "B", "C"}, nil)
	row := []any{"2024-03-01 10:30:00", "never", nil}

	got := ds.Time(row, "A", time.UTC)
	if assert.NotNil(t, got) {
		assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), *got)
	}
	assert.Nil(t, ds.Time(row, "B", time.UTC))
	assert.Nil(t, ds.Time(row, "C", time.UTC))
}

package huffpack

import (
	"testing"
)

func TestCountFrequencies(t *testing.T) {
	f := CountFrequencies([]byte{1, 34, 64, 124, 255, 1, 1})

	type testRow struct {
		value byte
		count uint64
	}
	testData := [...]testRow{
		{value: 0, count: 0},
		{value: 1, count: 3},
		{value: 34, count: 1},
		{value: 64, count: 1},
		{value: 124, count: 1},
		{value: 255, count: 1},
	}
	for _, row := range testData {
		if f[row.value] != row.count {
			t.Errorf("byte %d: expected count %d, got %d", row.value, row.count, f[row.value])
		}
	}
	if n := f.Distinct(); n != 5 {
		t.Errorf("expected 5 distinct values, got %d", n)
	}
	if n := f.Total(); n != 7 {
		t.Errorf("expected total 7, got %d", n)
	}
}

func TestCountFrequencies_Empty(t *testing.T) {
	f := CountFrequencies(nil)
	if f.Distinct() != 0 || f.Total() != 0 {
		t.Errorf("expected zero counts, got %d distinct, %d total", f.Distinct(), f.Total())
	}
}

func TestFrequencies_Add(t *testing.T) {
	var f Frequencies
	f.Add([]byte("abc"))
	f.Add([]byte("aab"))
	if f['a'] != 3 || f['b'] != 2 || f['c'] != 1 {
		t.Errorf("wrong counts: a=%d b=%d c=%d", f['a'], f['b'], f['c'])
	}
}

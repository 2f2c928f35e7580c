package rng

import "testing"

func TestDeterministicWithSameSeed(t *testing.T) {
	a := New(99)
	b := New(99)
	for i := 0; i < 1000; i++ {
		if a.Float() != b.Float() {
			t.Fatalf("sequence diverged at draw %d", i)
		}
	}
}

func TestRangeBounds(t *testing.T) {
	rn := New(7)
	for i := 0; i < 10000; i++ {
		v := rn.Range(0.65, 0.85)
		if v < 0.65 || v >= 0.85 {
			t.Fatalf("Range(0.65, 0.85) = %v out of bounds", v)
		}
	}
}

func TestChanceExtremes(t *testing.T) {
	rn := New(7)
	for i := 0; i < 100; i++ {
		if rn.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !rn.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
}

func TestChanceRate(t *testing.T) {
	rn := New(12345)
	hits := 0
	const n = 100000
	for i := 0; i < n; i++ {
		if rn.Chance(0.05) {
			hits++
		}
	}
	rate := float64(hits) / n
	if rate < 0.045 || rate > 0.055 {
		t.Fatalf("Chance(0.05) observed rate %v, want ~0.05", rate)
	}
}

package geo

import "testing"

func TestHaversineMilesOneDegreeLongitudeAtEquator(t *testing.T) {
	a := NewLocation(0, 0)
	b := NewLocation(0, 1)

	got := HaversineMiles(a, b)
	want := 69.09

	if diff := got - want; diff > 0.5 || diff < -0.5 {
		t.Fatalf("HaversineMiles(0,0 -> 0,1) = %.4f, want ~%.2f", got, want)
	}
}

func TestHaversineMilesZeroForIdenticalPoints(t *testing.T) {
	a := NewLocation(40.4406, -79.9959)
	if got := HaversineMiles(a, a); got != 0 {
		t.Fatalf("HaversineMiles(a, a) = %v, want 0", got)
	}
}

func TestHaversineMilesSymmetric(t *testing.T) {
	a := NewLocation(40.4406, -79.9959)
	b := NewLocation(40.45, -80.00)

	if HaversineMiles(a, b) != HaversineMiles(b, a) {
		t.Fatalf("HaversineMiles is not symmetric")
	}
}

func TestFormatDMS(t *testing.T) {
	l := NewLocation(40.4406, -79.9959)
	got := FormatDMS(l)
	if got == "" {
		t.Fatalf("FormatDMS returned empty string")
	}
}

package utils

import (
	"math"
	"testing"
)

// -----------------------------------------------------------------------------

func TestCalculateMeanStd(t *testing.T) {
	mean, std := CalculateMeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if mean != 5 {
		t.Errorf("expected mean 5, got %v", mean)
	}
	if math.Abs(std-2) > 1e-9 {
		t.Errorf("expected population std 2, got %v", std)
	}

	if m, s := CalculateMeanStd(nil); m != 0 || s != 0 {
		t.Errorf("empty input: expected zeros, got %v/%v", m, s)
	}
	if m, s := CalculateMeanStd([]float64{3}); m != 3 || s != 0 {
		t.Errorf("single element: expected 3/0, got %v/%v", m, s)
	}
}

// -----------------------------------------------------------------------------

func TestCalculateChangePercent(t *testing.T) {
	if got := CalculateChangePercent(110, 100); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("expected 0.1, got %v", got)
	}
	if got := CalculateChangePercent(90, 100); math.Abs(got+0.1) > 1e-9 {
		t.Errorf("expected -0.1, got %v", got)
	}
	if got := CalculateChangePercent(10, 0); got != 0 {
		t.Errorf("zero previous must yield 0, got %v", got)
	}
}

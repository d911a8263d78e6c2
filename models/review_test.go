package models

import (
	"math"
	"testing"
)

func TestMeanStars(t *testing.T) {
	reviews := []Review{{Stars: 5}, {Stars: 4}, {Stars: 3}}
	if got := MeanStars(reviews); math.Abs(float64(got)-4.0) > 1e-6 {
		t.Errorf("MeanStars([5 4 3]) = %f, want 4.0", got)
	}

	if got := MeanStars(nil); got != 0 {
		t.Errorf("MeanStars(nil) = %f, want 0", got)
	}

	// removing a review recomputes over the remainder
	if got := MeanStars(reviews[:2]); math.Abs(float64(got)-4.5) > 1e-6 {
		t.Errorf("MeanStars([5 4]) = %f, want 4.5", got)
	}
}

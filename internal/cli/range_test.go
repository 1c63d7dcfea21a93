package cli

import (
	"testing"
	"time"

	"eventform/internal/daterange"
	"eventform/internal/datetime"
)

func TestWeekNumbers(t *testing.T) {
	w := daterange.Window{From: datetime.NewDate(2023, time.June, 5), To: datetime.NewDate(2023, time.June, 18)}
	if got := weekNumbers(w); got != "23, 24" {
		t.Fatalf("expected '23, 24', got %q", got)
	}
}

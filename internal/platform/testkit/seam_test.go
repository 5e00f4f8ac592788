package testkit

import "testing"

var seamTarget = "orig"

func TestSwap_Restores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Serial(t)
		Swap(t, &seamTarget, "swapped")
		if seamTarget != "swapped" {
			t.Fatalf("Swap did not apply, got %q", seamTarget)
		}
	})
	if seamTarget != "orig" {
		t.Fatalf("Swap did not restore, got %q", seamTarget)
	}
}

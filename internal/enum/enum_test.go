package enum

import "testing"

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		if !IsValidOrderStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "bogus", "PENDING", "pendiente"} {
		if IsValidOrderStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestIsTerminalOrderStatus(t *testing.T) {
	terminal := map[string]bool{
		OrderStatusDelivered: true,
		OrderStatusCancelled: true,
	}
	for _, s := range OrderStatuses {
		if got := IsTerminalOrderStatus(s); got != terminal[s] {
			t.Errorf("IsTerminalOrderStatus(%q) = %v, want %v", s, got, terminal[s])
		}
	}
}

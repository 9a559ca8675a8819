package models

import "testing"

func TestVehicleKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BA 2 PA 4567", "ba-2-pa-4567"},
		{"  BA 2 PA 4567  ", "ba-2-pa-4567"},
		{"GA\t12  KHA 999", "ga-12-kha-999"},
		{"na1pa100", "na1pa100"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := VehicleKey(tt.in); got != tt.want {
			t.Errorf("VehicleKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ram.Thapa@Gmail.com "); got != "ram.thapa@gmail.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

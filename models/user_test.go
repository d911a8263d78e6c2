package models

import "testing"

func TestHostStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"pending", "approved", true},
		{"pending", "denied", true},
		{"denied", "approved", true},  // re-approval permitted
		{"approved", "denied", true},  // revocation permitted
		{"approved", "approved", false},
		{"denied", "denied", false},
		{"", "approved", false}, // never applied
		{"", "denied", false},
	}

	for _, tc := range cases {
		if got := CanTransitionHostStatus(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransitionHostStatus(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsHost(t *testing.T) {
	if !(&User{Role: "host"}).IsHost() {
		t.Error("role host should report IsHost")
	}
	for _, role := range []string{"user", "admin", "super_admin", ""} {
		if (&User{Role: role}).IsHost() {
			t.Errorf("role %q should not report IsHost", role)
		}
	}
}

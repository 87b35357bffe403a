package timezone

import "testing"

func TestIsValid(t *testing.T) {
	cases := []struct {
		tz   string
		want bool
	}{
		{"UTC", true},
		{"America/Sao_Paulo", true},
		{"Europe/Lisbon", true},
		{"", false},
		{"Mars/Olympus_Mons", false},
		{"utc sharp", false},
	}

	for _, tc := range cases {
		if got := IsValid(tc.tz); got != tc.want {
			t.Errorf("IsValid(%q) = %v, want %v", tc.tz, got, tc.want)
		}
	}
}

func TestDefaultIsValid(t *testing.T) {
	if !IsValid(DefaultTimezone) {
		t.Fatalf("default timezone %q must be loadable", DefaultTimezone)
	}
}

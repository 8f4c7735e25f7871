package validator

import "testing"

func TestGiveawayTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"2026-12-31 18:00", true},
		{"  2026-12-31 18:00  ", true},
		{"2026-12-31", false},
		{"31.12.2026 18:00", false},
		{"2026-12-31 18:00:00", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := GiveawayTime(tt.value, nil); got != tt.want {
			t.Errorf("GiveawayTime(%q) = %t, want %t", tt.value, got, tt.want)
		}
	}
}

func TestGiveawayPeriod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		publishAt string
		endAt     string
		want      bool
	}{
		{"2026-12-31 18:00", "2027-01-01 12:00", true},
		{"2026-12-31 18:00", "2026-12-31 18:01", true},
		{"2026-12-31 18:00", "2026-12-31 18:00", false},
		{"2027-01-01 12:00", "2026-12-31 18:00", false},
		{"garbage", "2026-12-31 18:00", false},
		{"2026-12-31 18:00", "garbage", false},
	}
	for _, tt := range tests {
		if got := GiveawayPeriod(tt.publishAt, tt.endAt, nil); got != tt.want {
			t.Errorf("GiveawayPeriod(%q, %q) = %t, want %t", tt.publishAt, tt.endAt, got, tt.want)
		}
	}
}

func TestChannelHandle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"@MyTestChannel", true},
		{"-1001234567890", true},
		{"1234", true},
		{"@", false},
		{"MyTestChannel", false},
		{"https://t.me/MyTestChannel", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ChannelHandle(tt.value, nil); got != tt.want {
			t.Errorf("ChannelHandle(%q) = %t, want %t", tt.value, got, tt.want)
		}
	}
}

func TestWinnerCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"25", true},
		{" 3 ", true},
		{"0", false},
		{"-1", false},
		{"three", false},
		{"2.5", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := WinnerCount(tt.value, nil); got != tt.want {
			t.Errorf("WinnerCount(%q) = %t, want %t", tt.value, got, tt.want)
		}
	}
}

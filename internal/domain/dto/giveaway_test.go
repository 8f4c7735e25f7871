package dto

import (
	"errors"
	"testing"

	"github.com/randomgive/giveaway-bot/internal/domain/common/errorz"
)

func TestParseGiveawayDraft(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "valid",
			raw:  "2026-12-31 18:00\n2027-01-01 12:00\n@MyTestChannel\n3\nУчаствуй в нашем розыгрыше!",
		},
		{
			name: "valid with numeric channel id",
			raw:  "2026-12-31 18:00\n2027-01-01 12:00\n-1001234567890\n3\ntext",
		},
		{
			name: "valid with surrounding whitespace",
			raw:  "  2026-12-31 18:00 \n 2027-01-01 12:00\n @MyTestChannel \n 3 \n text ",
		},
		{
			name:    "too few lines",
			raw:     "2026-12-31 18:00\n2027-01-01 12:00\n@MyTestChannel\n3",
			wantErr: true,
		},
		{
			name:    "bad publish time",
			raw:     "31.12.2026 18:00\n2027-01-01 12:00\n@MyTestChannel\n3\ntext",
			wantErr: true,
		},
		{
			name:    "bad end time",
			raw:     "2026-12-31 18:00\ntomorrow\n@MyTestChannel\n3\ntext",
			wantErr: true,
		},
		{
			name:    "end equals publish",
			raw:     "2026-12-31 18:00\n2026-12-31 18:00\n@MyTestChannel\n3\ntext",
			wantErr: true,
		},
		{
			name:    "end before publish",
			raw:     "2027-01-01 12:00\n2026-12-31 18:00\n@MyTestChannel\n3\ntext",
			wantErr: true,
		},
		{
			name:    "bare at sign as handle",
			raw:     "2026-12-31 18:00\n2027-01-01 12:00\n@\n3\ntext",
			wantErr: true,
		},
		{
			name:    "handle is neither username nor id",
			raw:     "2026-12-31 18:00\n2027-01-01 12:00\nmy channel\n3\ntext",
			wantErr: true,
		},
		{
			name:    "zero winners",
			raw:     "2026-12-31 18:00\n2027-01-01 12:00\n@MyTestChannel\n0\ntext",
			wantErr: true,
		},
		{
			name:    "negative winners",
			raw:     "2026-12-31 18:00\n2027-01-01 12:00\n@MyTestChannel\n-2\ntext",
			wantErr: true,
		},
		{
			name:    "winner count is not a number",
			raw:     "2026-12-31 18:00\n2027-01-01 12:00\n@MyTestChannel\nthree\ntext",
			wantErr: true,
		},
		{
			name:    "empty post text",
			raw:     "2026-12-31 18:00\n2027-01-01 12:00\n@MyTestChannel\n3\n   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			draft, err := ParseGiveawayDraft(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, errorz.InvalidGiveawayInput) {
					t.Fatalf("err = %v, want errorz.InvalidGiveawayInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if draft.WinnerCount != 3 {
				t.Fatalf("WinnerCount = %d, want 3", draft.WinnerCount)
			}
			if !draft.EndAt.After(draft.PublishAt) {
				t.Fatalf("EndAt %v is not after PublishAt %v", draft.EndAt, draft.PublishAt)
			}
		})
	}
}

func TestParseGiveawayDraft_KeepsMultilinePostText(t *testing.T) {
	t.Parallel()

	raw := "2026-12-31 18:00\n2027-01-01 12:00\n@MyTestChannel\n3\nfirst line\nsecond line\n\nlast line"
	draft, err := ParseGiveawayDraft(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "first line\nsecond line\n\nlast line"
	if draft.PostText != want {
		t.Fatalf("PostText = %q, want %q", draft.PostText, want)
	}
	if draft.ChannelHandle != "@MyTestChannel" {
		t.Fatalf("ChannelHandle = %q", draft.ChannelHandle)
	}
}

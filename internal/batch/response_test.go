package batch

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseConfirmed(t *testing.T) {
	submitted := []string{"vid1", "vid2", "vid3"}

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "per-item results with ids",
			raw: `{"actionResults": [
				{"status": "STATUS_SUCCEEDED", "item": {"videoId": "vid1"}},
				{"status": "STATUS_FAILED", "item": {"videoId": "vid2"}},
				{"status": "STATUS_SUCCEEDED", "item": {"videoId": "vid3"}}
			]}`,
			want: []string{"vid1", "vid3"},
		},
		{
			name: "per-item success without id falls back to position",
			raw: `{"actionResults": [
				{"status": "STATUS_SUCCEEDED"},
				{"status": "STATUS_SUCCEEDED", "item": {"videoId": "vid2"}},
				{"status": "STATUS_FAILED"}
			]}`,
			want: []string{"vid1", "vid2"},
		},
		{
			name: "per-item shape with zero successes confirms nothing",
			raw: `{"actionResults": [
				{"status": "STATUS_FAILED", "item": {"videoId": "vid1"}}
			], "status": "SUCCEEDED"}`,
			want: nil,
		},
		{
			name: "overall status confirms everything submitted",
			raw:  `{"status": "SUCCEEDED"}`,
			want: []string{"vid1", "vid2", "vid3"},
		},
		{
			name: "overall status failure falls through",
			raw:  `{"status": "FAILED"}`,
			want: nil,
		},
		{
			name: "feedback action success confirms everything",
			raw: `{"actions": [
				{"addToPlaylistFeedback": "FAILURE"},
				{"addToPlaylistFeedback": "SUCCESS"}
			]}`,
			want: []string{"vid1", "vid2", "vid3"},
		},
		{
			name: "feedback actions without success confirm nothing",
			raw:  `{"actions": [{"addToPlaylistFeedback": "FAILURE"}]}`,
			want: nil,
		},
		{
			name: "unrecognized response confirms nothing",
			raw:  `{"whatever": true}`,
			want: nil,
		},
		{
			name: "malformed json confirms nothing",
			raw:  `not json`,
			want: nil,
		},
		{
			name: "empty object confirms nothing",
			raw:  `{}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseConfirmed(json.RawMessage(tt.raw), submitted)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseConfirmed() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The per-item shape outranks the others: a response carrying actionResults
// is judged on those results alone, even when a top-level status would have
// claimed blanket success.
func TestParseConfirmedShapePriority(t *testing.T) {
	raw := json.RawMessage(`{
		"status": "SUCCEEDED",
		"actionResults": [{"status": "STATUS_SUCCEEDED", "item": {"videoId": "vid2"}}]
	}`)
	got := ParseConfirmed(raw, []string{"vid1", "vid2"})
	if !reflect.DeepEqual(got, []string{"vid2"}) {
		t.Errorf("ParseConfirmed() = %v, want only the per-item confirmation", got)
	}
}

package identify

import "testing"

func TestActivityName(t *testing.T) {
	cases := []struct {
		notes     string
		workoutID string
		want      string
	}{
		{"incline trail run", "abc", "Incline Trail Run"},
		{"30-min hill climb", "abc", "30 Min Hill Climb"},
		{"  rolling hills.  ", "abc", "Rolling Hills"},
		{"", "abc123", "iFit Workout abc123"},
		{"   ", "abc123", "iFit Workout abc123"},
		{"", "", "iFit Workout"},
	}
	for _, tc := range cases {
		if got := ActivityName(tc.notes, tc.workoutID); got != tc.want {
			t.Errorf("ActivityName(%q, %q) = %q, want %q", tc.notes, tc.workoutID, got, tc.want)
		}
	}
}

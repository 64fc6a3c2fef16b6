// Package identify derives presentable Strava activity names from the
// metadata embedded in downloaded workout files.
package identify

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const fallbackName = "iFit Workout"

// ActivityName produces the name used when uploading a workout. It prefers
// the workout's notes, cleaned up and title-cased; when the notes are empty
// it falls back to a generic name tagged with the workout ID.
func ActivityName(notes, workoutID string) string {
	cleaned := cleanName(notes)
	if cleaned == "" {
		if workoutID == "" {
			return fallbackName
		}
		return fallbackName + " " + workoutID
	}
	return cases.Title(language.Und).String(cleaned)
}

func cleanName(raw string) string {
	builder := strings.Builder{}
	prevSpace := false
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'' || r == '&':
			builder.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.' || r == ',' || r == '/':
			if !prevSpace && builder.Len() > 0 {
				builder.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	return strings.TrimSpace(builder.String())
}

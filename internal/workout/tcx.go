package workout

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type trainingCenterDatabase struct {
	Activities struct {
		Activity []tcxActivity `xml:"Activity"`
	} `xml:"Activities"`
}

type tcxActivity struct {
	Sport string   `xml:"Sport,attr"`
	ID    string   `xml:"Id"`
	Notes string   `xml:"Notes"`
	Laps  []tcxLap `xml:"Lap"`
}

type tcxLap struct {
	StartTime        string  `xml:"StartTime,attr"`
	TotalTimeSeconds float64 `xml:"TotalTimeSeconds"`
	DistanceMeters   float64 `xml:"DistanceMeters"`
}

// LooksLikeTCX reports whether data resembles a complete TCX export. It is a
// cheap shape check used to validate cached downloads, not a full parse.
func LooksLikeTCX(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("<?xml ")) {
		return false
	}
	return bytes.Contains(data, []byte("<TrainingCenterDatabase")) &&
		bytes.Contains(data, []byte("</TrainingCenterDatabase>"))
}

// ParseTCX reads a TCX file and extracts the fields matching cares about:
// start time (millisecond precision), total duration, and the free-text notes.
// The workout ID is the file's base name, matching the iFit export naming.
func ParseTCX(path string) (Workout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Workout{}, fmt.Errorf("read workout file: %w", err)
	}
	if !LooksLikeTCX(data) {
		return Workout{}, fmt.Errorf("workout file %s is not a complete TCX document", filepath.Base(path))
	}

	var tcx trainingCenterDatabase
	if err := xml.Unmarshal(data, &tcx); err != nil {
		return Workout{}, fmt.Errorf("parse TCX %s: %w", filepath.Base(path), err)
	}
	if len(tcx.Activities.Activity) == 0 {
		return Workout{}, fmt.Errorf("TCX %s contains no activities", filepath.Base(path))
	}

	activity := tcx.Activities.Activity[0]
	if len(activity.Laps) == 0 {
		return Workout{}, fmt.Errorf("TCX %s contains no laps", filepath.Base(path))
	}

	startedAt, err := parseStartTime(activity)
	if err != nil {
		return Workout{}, fmt.Errorf("TCX %s: %w", filepath.Base(path), err)
	}

	var duration float64
	for _, lap := range activity.Laps {
		duration += lap.TotalTimeSeconds
	}

	return Workout{
		ID:        filepath.Base(path),
		StartedAt: startedAt,
		Duration:  duration,
		Notes:     strings.TrimSpace(activity.Notes),
		TCXPath:   path,
	}, nil
}

func parseStartTime(activity tcxActivity) (time.Time, error) {
	// Lap StartTime carries the millisecond precision iFit records; the
	// Activity Id is a whole-second fallback some exports use.
	candidates := []string{activity.Laps[0].StartTime, activity.ID}
	for _, raw := range candidates {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("no parseable start time")
}

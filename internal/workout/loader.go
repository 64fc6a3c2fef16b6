package workout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LoadDir parses every cached workout file in dir and returns the workouts
// sorted ascending by start time. Subdirectories are ignored.
func LoadDir(dir string) ([]Workout, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read workout directory: %w", err)
	}

	workouts := make([]Workout, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w, err := ParseTCX(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}

	sort.Slice(workouts, func(i, j int) bool {
		return workouts[i].StartedAt.Before(workouts[j].StartedAt)
	})
	return workouts, nil
}

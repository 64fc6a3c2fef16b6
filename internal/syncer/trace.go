package syncer

import (
	"log/slog"

	"stridesync/internal/matching"
)

// slogTrace adapts the matcher's trace callback to debug logging, rendering
// window snapshots with positional markers relative to the located index.
func slogTrace(logger *slog.Logger) matching.TraceFunc {
	return func(ev matching.TraceEvent) {
		if ev.Window {
			marker := "==="
			switch {
			case ev.Index < ev.Located:
				marker = "<<<"
			case ev.Index > ev.Located:
				marker = ">>>"
			}
			logger.Debug("match window",
				"marker", marker,
				"index", ev.Index,
				"activity_id", ev.Activity.ID,
				"start", ev.Activity.StartDate,
			)
			return
		}

		logger.Debug("inspecting candidate",
			"direction", ev.Direction.String(),
			"index", ev.Index,
			"activity_id", ev.Activity.ID,
			"start", ev.Activity.StartDate,
			"matched", ev.Matched,
		)
	}
}

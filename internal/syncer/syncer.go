package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"stridesync/internal/config"
	"stridesync/internal/identify"
	"stridesync/internal/matching"
	"stridesync/internal/services/strava"
	"stridesync/internal/synclog"
	"stridesync/internal/workout"
)

const uploadDescription = "iFit virtual treadmill run"

// StravaService is the slice of the Strava client the syncer needs.
type StravaService interface {
	Activities(ctx context.Context, after time.Time) ([]strava.Activity, error)
	Upload(ctx context.Context, req strava.UploadRequest) (strava.UploadResult, error)
	UpdateActivityGear(ctx context.Context, activityID int64, gearID string) error
}

// Recorder persists upload results.
type Recorder interface {
	Add(ctx context.Context, record synclog.Record) (synclog.Record, error)
}

// Summary reports what a sync run did.
type Summary struct {
	RunID      string
	Workouts   int
	Uploaded   int
	Skipped    int
	Duplicates int
}

// Syncer performs idempotent workout uploads.
type Syncer struct {
	cfg      *config.Config
	strava   StravaService
	recorder Recorder
	logger   *slog.Logger

	lockPath string
	lock     *flock.Flock
}

// New constructs a syncer with initialized dependencies.
func New(cfg *config.Config, service StravaService, recorder Recorder, logger *slog.Logger) (*Syncer, error) {
	if cfg == nil || service == nil || recorder == nil {
		return nil, errors.New("syncer requires config, strava service, and recorder")
	}
	if logger == nil {
		logger = slog.Default()
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "stridesync.lock")
	return &Syncer{
		cfg:      cfg,
		strava:   service,
		recorder: recorder,
		logger:   logger,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Run uploads every cached workout that has no similar activity on Strava.
// Only one run may be active at a time; concurrent runs fail fast.
func (s *Syncer) Run(ctx context.Context) (Summary, error) {
	ok, err := s.lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire sync lock: %w", err)
	}
	if !ok {
		return Summary{}, errors.New("another stridesync run is already in progress")
	}
	defer func() {
		if unlockErr := s.lock.Unlock(); unlockErr != nil {
			s.logger.Warn("failed to release sync lock", "error", unlockErr)
		}
	}()

	return s.run(ctx)
}

func (s *Syncer) run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: uuid.New().String()}
	logger := s.logger.With("run_id", summary.RunID)

	workouts, err := workout.LoadDir(s.cfg.Paths.WorkoutDir)
	if err != nil {
		return summary, fmt.Errorf("load workouts: %w", err)
	}
	summary.Workouts = len(workouts)
	if len(workouts) == 0 {
		logger.Info("no cached workouts to sync", "dir", s.cfg.Paths.WorkoutDir)
		return summary, nil
	}

	earliest := workouts[0].StartedAt
	logger.Debug("fetching existing activities", "after", earliest)
	activities, err := s.strava.Activities(ctx, earliest)
	if err != nil {
		return summary, fmt.Errorf("fetch activities: %w", err)
	}

	trace := slogTrace(logger)
	for _, w := range workouts {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if matching.ShouldSkip(w, s.cfg.Sync.Skip) {
			logger.Debug("skipping workout", "workout", w.ID, "duration", w.Duration)
			summary.Skipped++
			continue
		}

		matches, err := matching.FindSimilarActivities(w, activities, matching.WithTrace(trace))
		if err != nil && !errors.Is(err, matching.ErrNoActivities) {
			return summary, fmt.Errorf("match workout %s: %w", w.ID, err)
		}
		if len(matches) > 0 {
			logger.Debug("workout already on strava",
				"workout", w.ID,
				"matches", len(matches),
				"activity_id", matches[0].ID,
			)
			summary.Duplicates++
			continue
		}

		if err := s.upload(ctx, logger, summary.RunID, w); err != nil {
			return summary, err
		}
		summary.Uploaded++
	}

	logger.Info("sync complete",
		"workouts", summary.Workouts,
		"uploaded", summary.Uploaded,
		"skipped", summary.Skipped,
		"duplicates", summary.Duplicates,
	)
	return summary, nil
}

func (s *Syncer) upload(ctx context.Context, logger *slog.Logger, runID string, w workout.Workout) error {
	name := identify.ActivityName(w.Notes, w.ID)
	logger.Info("uploading workout", "workout", w.ID, "name", name)

	result, err := s.strava.Upload(ctx, strava.UploadRequest{
		FilePath:     w.TCXPath,
		Name:         name,
		Description:  uploadDescription,
		ActivityType: "VirtualRun",
		ExternalID:   w.ID,
	})
	if err != nil {
		return fmt.Errorf("upload workout %s: %w", w.ID, err)
	}
	logger.Info("uploaded workout", "workout", w.ID, "url", result.URL())

	if gearID := s.cfg.Strava.GearID; gearID != "" {
		logger.Debug("assigning gear", "activity_id", result.ActivityID, "gear_id", gearID)
		if err := s.strava.UpdateActivityGear(ctx, result.ActivityID, gearID); err != nil {
			return fmt.Errorf("assign gear to activity %d: %w", result.ActivityID, err)
		}
	}

	if _, err := s.recorder.Add(ctx, synclog.Record{
		WorkoutID:   w.ID,
		ActivityID:  result.ActivityID,
		ActivityURL: result.URL(),
		RunID:       runID,
	}); err != nil {
		return fmt.Errorf("record upload of %s: %w", w.ID, err)
	}
	return nil
}

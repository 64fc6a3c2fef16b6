package strava

import (
	"fmt"
	"time"
)

// Activity is a previously recorded Strava activity used as a matching
// candidate. StartDate is truncated to whole seconds by the API.
type Activity struct {
	ID          int64
	Name        string
	Type        string
	StartDate   time.Time
	ElapsedTime int // seconds, includes paused time
	MovingTime  int // seconds
	Distance    float64
}

// URL returns the public activity page.
func (a Activity) URL() string {
	return fmt.Sprintf("https://www.strava.com/activities/%d", a.ID)
}

// Athlete is the authenticated athlete's identity.
type Athlete struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// UploadResult describes a completed activity upload.
type UploadResult struct {
	UploadID   int64
	ActivityID int64
}

// URL returns the public page of the created activity.
func (r UploadResult) URL() string {
	return fmt.Sprintf("https://www.strava.com/activities/%d", r.ActivityID)
}

type apiActivity struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	StartDate   string  `json:"start_date"`
	ElapsedTime int     `json:"elapsed_time"`
	MovingTime  int     `json:"moving_time"`
	Distance    float64 `json:"distance"`
}

func (a apiActivity) toActivity() (Activity, error) {
	start, err := time.Parse(time.RFC3339, a.StartDate)
	if err != nil {
		return Activity{}, fmt.Errorf("parse activity %d start date %q: %w", a.ID, a.StartDate, err)
	}
	return Activity{
		ID:          a.ID,
		Name:        a.Name,
		Type:        a.Type,
		StartDate:   start,
		ElapsedTime: a.ElapsedTime,
		MovingTime:  a.MovingTime,
		Distance:    a.Distance,
	}, nil
}

package models

import (
	"encoding/json"
	"time"
)

// FutureTrip is a planned trip owned by a single user. Start and end dates
// cross the wire as epoch milliseconds.
type FutureTrip struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	Title         string  `json:"title"`
	Destination   string  `json:"destination"`
	StartDate     int64   `json:"startDate"`
	EndDate       int64   `json:"endDate"`
	Description   string  `json:"description,omitempty"`
	Budget        float64 `json:"budget,omitempty"`
	Accommodation string  `json:"accommodation,omitempty"`

	// JSON string field for DB storage
	ActivitiesJSON string `json:"-"`

	// Slice field for API interaction
	Activities []string `json:"activities"`

	CreatedAt time.Time `json:"createdAt"`
}

// PrepareForSave marshals the activity list into its JSON string for DB storage.
func (t *FutureTrip) PrepareForSave() {
	actBytes, _ := json.Marshal(t.Activities)
	t.ActivitiesJSON = string(actBytes)
}

// PrepareForAPI unmarshals the stored JSON string back into the activity list.
func (t *FutureTrip) PrepareForAPI() {
	if t.ActivitiesJSON != "" {
		json.Unmarshal([]byte(t.ActivitiesJSON), &t.Activities)
	}
	if t.Activities == nil {
		t.Activities = []string{}
	}
}

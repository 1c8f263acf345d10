package models

import (
	"encoding/json"
	"time"
)

// TravelStory is a journal entry owned by a single user. Dates cross the
// wire as epoch milliseconds.
type TravelStory struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Story       string `json:"story"`
	ImageURL    string `json:"imageUrl"`
	VisitedDate int64  `json:"visitedDate"`
	IsFavourite bool   `json:"isFavourite"`

	// JSON string field for DB storage
	VisitedLocationJSON string `json:"-"`

	// Slice field for API interaction
	VisitedLocation []string `json:"visitedLocation"`

	CreatedAt time.Time `json:"createdAt"`
}

// PrepareForSave marshals the location list into its JSON string for DB storage.
func (s *TravelStory) PrepareForSave() {
	locBytes, _ := json.Marshal(s.VisitedLocation)
	s.VisitedLocationJSON = string(locBytes)
}

// PrepareForAPI unmarshals the stored JSON string back into the location list.
func (s *TravelStory) PrepareForAPI() {
	if s.VisitedLocationJSON != "" {
		json.Unmarshal([]byte(s.VisitedLocationJSON), &s.VisitedLocation)
	}
	if s.VisitedLocation == nil {
		s.VisitedLocation = []string{}
	}
}

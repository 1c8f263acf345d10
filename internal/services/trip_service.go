package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/triply/triply-be/internal/apperrors"
	"github.com/triply/triply-be/internal/models"
)

// TripServiceProvider defines the interface for future trip services.
type TripServiceProvider interface {
	CreateTrip(trip models.FutureTrip) (models.FutureTrip, error)
	GetTripsByUser(userID string) ([]models.FutureTrip, error)
	UpdateTrip(id, userID string, update TripUpdate) (models.FutureTrip, error)
	DeleteTrip(id, userID string) error
}

// TripUpdate carries the fields of a partial trip edit. Nil pointers mean
// "leave unchanged".
type TripUpdate struct {
	Title         *string
	Destination   *string
	StartDate     *int64
	EndDate       *int64
	Description   *string
	Budget        *float64
	Accommodation *string
	Activities    *[]string
}

// TripService provides business logic for future trips, with the same
// (id, owner) mutation scoping as travel stories.
type TripService struct {
	db *sql.DB
}

// NewTripService creates a new TripService.
func NewTripService(db *sql.DB) *TripService {
	return &TripService{db: db}
}

const tripColumns = "id, user_id, title, destination, start_date, end_date, description, budget, accommodation, activities_json, created_at"

// scanTrip is a helper to scan a trip from a row or rows object.
func scanTrip(scanner interface{ Scan(...interface{}) error }) (models.FutureTrip, error) {
	var tr models.FutureTrip
	var desc, accommodation, activities sql.NullString
	var budget sql.NullFloat64

	err := scanner.Scan(
		&tr.ID, &tr.UserID, &tr.Title, &tr.Destination, &tr.StartDate,
		&tr.EndDate, &desc, &budget, &accommodation, &activities, &tr.CreatedAt,
	)
	if err != nil {
		return tr, err
	}

	tr.Description = desc.String
	tr.Budget = budget.Float64
	tr.Accommodation = accommodation.String
	tr.ActivitiesJSON = activities.String
	tr.PrepareForAPI()
	return tr, nil
}

// CreateTrip persists a new trip for its owner.
func (s *TripService) CreateTrip(trip models.FutureTrip) (models.FutureTrip, error) {
	trip.ID = uuid.New().String()
	trip.PrepareForSave()

	_, err := s.db.Exec(`
		INSERT INTO future_trips(id, user_id, title, destination, start_date, end_date, description, budget, accommodation, activities_json, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.UserID, trip.Title, trip.Destination, trip.StartDate,
		trip.EndDate, trip.Description, trip.Budget, trip.Accommodation, trip.ActivitiesJSON, time.Now().UTC(),
	)
	if err != nil {
		return models.FutureTrip{}, err
	}
	return s.getTrip(trip.ID, trip.UserID)
}

// getTrip retrieves one trip scoped by (id, owner).
func (s *TripService) getTrip(id, userID string) (models.FutureTrip, error) {
	row := s.db.QueryRow(
		"SELECT "+tripColumns+" FROM future_trips WHERE id = ? AND user_id = ?",
		id, userID,
	)
	tr, err := scanTrip(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.FutureTrip{}, apperrors.ErrNotFound
		}
		return models.FutureTrip{}, err
	}
	return tr, nil
}

// GetTripsByUser lists the caller's trips, soonest start date first.
func (s *TripService) GetTripsByUser(userID string) ([]models.FutureTrip, error) {
	rows, err := s.db.Query(
		"SELECT "+tripColumns+" FROM future_trips WHERE user_id = ? ORDER BY start_date ASC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []models.FutureTrip{}
	for rows.Next() {
		tr, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, tr)
	}
	return trips, rows.Err()
}

// UpdateTrip applies a partial edit to the caller's own trip.
func (s *TripService) UpdateTrip(id, userID string, update TripUpdate) (models.FutureTrip, error) {
	trip, err := s.getTrip(id, userID)
	if err != nil {
		return models.FutureTrip{}, err
	}

	if update.Title != nil {
		trip.Title = *update.Title
	}
	if update.Destination != nil {
		trip.Destination = *update.Destination
	}
	if update.StartDate != nil {
		trip.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		trip.EndDate = *update.EndDate
	}
	if update.Description != nil {
		trip.Description = *update.Description
	}
	if update.Budget != nil {
		trip.Budget = *update.Budget
	}
	if update.Accommodation != nil {
		trip.Accommodation = *update.Accommodation
	}
	if update.Activities != nil {
		trip.Activities = *update.Activities
	}

	trip.PrepareForSave()
	res, err := s.db.Exec(`
		UPDATE future_trips
		SET title = ?, destination = ?, start_date = ?, end_date = ?, description = ?, budget = ?, accommodation = ?, activities_json = ?
		WHERE id = ? AND user_id = ?`,
		trip.Title, trip.Destination, trip.StartDate, trip.EndDate,
		trip.Description, trip.Budget, trip.Accommodation, trip.ActivitiesJSON,
		id, userID,
	)
	if err != nil {
		return models.FutureTrip{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.FutureTrip{}, apperrors.ErrNotFound
	}
	return s.getTrip(id, userID)
}

// DeleteTrip removes the caller's own trip.
func (s *TripService) DeleteTrip(id, userID string) error {
	res, err := s.db.Exec("DELETE FROM future_trips WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

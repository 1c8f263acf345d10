package services

import (
	"database/sql"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/triply/triply-be/internal/apperrors"
	"github.com/triply/triply-be/internal/models"
)

// StoryServiceProvider defines the interface for travel story services.
type StoryServiceProvider interface {
	CreateStory(story models.TravelStory) (models.TravelStory, error)
	GetStoriesByUser(userID string) ([]models.TravelStory, error)
	UpdateStory(id, userID string, update StoryUpdate) (models.TravelStory, error)
	DeleteStory(id, userID string) error
	SetFavourite(id, userID string, isFavourite bool) (models.TravelStory, error)
	SearchStories(userID, query string) ([]models.TravelStory, error)
	FilterStoriesByDate(userID string, start, end int64) ([]models.TravelStory, error)
	ReferencedImageFilenames() (map[string]bool, error)
}

// StoryUpdate carries the fields of a partial story edit. Nil pointers mean
// "leave unchanged".
type StoryUpdate struct {
	Title           *string
	Story           *string
	VisitedLocation *[]string
	ImageURL        *string
	VisitedDate     *int64
	IsFavourite     *bool
}

// StoryService provides business logic for travel stories. Every mutation is
// scoped by (story id, owner id) in a single statement: a story owned by
// someone else is indistinguishable from one that does not exist.
type StoryService struct {
	db *sql.DB
}

// NewStoryService creates a new StoryService.
func NewStoryService(db *sql.DB) *StoryService {
	return &StoryService{db: db}
}

const storyColumns = "id, user_id, title, story, image_url, visited_date, is_favourite, visited_location_json, created_at"

// scanStory is a helper to scan a story from a row or rows object.
func scanStory(scanner interface{ Scan(...interface{}) error }) (models.TravelStory, error) {
	var st models.TravelStory
	var locations sql.NullString

	err := scanner.Scan(
		&st.ID, &st.UserID, &st.Title, &st.Story, &st.ImageURL,
		&st.VisitedDate, &st.IsFavourite, &locations, &st.CreatedAt,
	)
	if err != nil {
		return st, err
	}

	st.VisitedLocationJSON = locations.String
	st.PrepareForAPI()
	return st, nil
}

func (s *StoryService) queryStories(query string, args ...interface{}) ([]models.TravelStory, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stories := []models.TravelStory{}
	for rows.Next() {
		st, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, st)
	}
	return stories, rows.Err()
}

// CreateStory persists a new story for its owner.
func (s *StoryService) CreateStory(story models.TravelStory) (models.TravelStory, error) {
	story.ID = uuid.New().String()
	story.PrepareForSave()

	_, err := s.db.Exec(`
		INSERT INTO travel_stories(id, user_id, title, story, image_url, visited_date, is_favourite, visited_location_json, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		story.ID, story.UserID, story.Title, story.Story, story.ImageURL,
		story.VisitedDate, story.IsFavourite, story.VisitedLocationJSON, time.Now().UTC(),
	)
	if err != nil {
		return models.TravelStory{}, err
	}
	return s.getStory(story.ID, story.UserID)
}

// getStory retrieves one story scoped by (id, owner).
func (s *StoryService) getStory(id, userID string) (models.TravelStory, error) {
	row := s.db.QueryRow(
		"SELECT "+storyColumns+" FROM travel_stories WHERE id = ? AND user_id = ?",
		id, userID,
	)
	st, err := scanStory(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.TravelStory{}, apperrors.ErrNotFound
		}
		return models.TravelStory{}, err
	}
	return st, nil
}

// GetStoriesByUser lists the caller's stories, favourites first, then newest.
func (s *StoryService) GetStoriesByUser(userID string) ([]models.TravelStory, error) {
	return s.queryStories(
		"SELECT "+storyColumns+" FROM travel_stories WHERE user_id = ? ORDER BY is_favourite DESC, created_at DESC",
		userID,
	)
}

// UpdateStory applies a partial edit to the caller's own story.
func (s *StoryService) UpdateStory(id, userID string, update StoryUpdate) (models.TravelStory, error) {
	story, err := s.getStory(id, userID)
	if err != nil {
		return models.TravelStory{}, err
	}

	if update.Title != nil {
		story.Title = *update.Title
	}
	if update.Story != nil {
		story.Story = *update.Story
	}
	if update.VisitedLocation != nil {
		story.VisitedLocation = *update.VisitedLocation
	}
	if update.ImageURL != nil {
		story.ImageURL = *update.ImageURL
	}
	if update.VisitedDate != nil {
		story.VisitedDate = *update.VisitedDate
	}
	if update.IsFavourite != nil {
		story.IsFavourite = *update.IsFavourite
	}

	story.PrepareForSave()
	res, err := s.db.Exec(`
		UPDATE travel_stories
		SET title = ?, story = ?, image_url = ?, visited_date = ?, is_favourite = ?, visited_location_json = ?
		WHERE id = ? AND user_id = ?`,
		story.Title, story.Story, story.ImageURL, story.VisitedDate,
		story.IsFavourite, story.VisitedLocationJSON, id, userID,
	)
	if err != nil {
		return models.TravelStory{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.TravelStory{}, apperrors.ErrNotFound
	}
	return s.getStory(id, userID)
}

// DeleteStory removes the caller's own story.
func (s *StoryService) DeleteStory(id, userID string) error {
	res, err := s.db.Exec("DELETE FROM travel_stories WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetFavourite flips the favourite flag on the caller's own story.
func (s *StoryService) SetFavourite(id, userID string, isFavourite bool) (models.TravelStory, error) {
	res, err := s.db.Exec(
		"UPDATE travel_stories SET is_favourite = ? WHERE id = ? AND user_id = ?",
		isFavourite, id, userID,
	)
	if err != nil {
		return models.TravelStory{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.TravelStory{}, apperrors.ErrNotFound
	}
	return s.getStory(id, userID)
}

// SearchStories performs a case-insensitive substring match over title,
// narrative and locations within the caller's stories, newest first.
func (s *StoryService) SearchStories(userID, query string) ([]models.TravelStory, error) {
	// SQLite LIKE is case-insensitive for ASCII; lower() both sides anyway
	// so mixed-case queries behave.
	pattern := "%" + query + "%"
	return s.queryStories(`
		SELECT `+storyColumns+` FROM travel_stories
		WHERE user_id = ?
		  AND (lower(title) LIKE lower(?) OR lower(story) LIKE lower(?) OR lower(visited_location_json) LIKE lower(?))
		ORDER BY created_at DESC`,
		userID, pattern, pattern, pattern,
	)
}

// FilterStoriesByDate selects the caller's stories whose visited date falls
// inside the inclusive [start, end] window (epoch millis), favourites first.
func (s *StoryService) FilterStoriesByDate(userID string, start, end int64) ([]models.TravelStory, error) {
	return s.queryStories(`
		SELECT `+storyColumns+` FROM travel_stories
		WHERE user_id = ? AND visited_date >= ? AND visited_date <= ?
		ORDER BY is_favourite DESC, visited_date DESC`,
		userID, start, end,
	)
}

// ReferencedImageFilenames returns the basename of every image URL any story
// references. Used by the upload sweeper.
func (s *StoryService) ReferencedImageFilenames() (map[string]bool, error) {
	rows, err := s.db.Query("SELECT image_url FROM travel_stories")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		if name := path.Base(url); name != "." && name != "/" {
			names[name] = true
		}
	}
	return names, rows.Err()
}

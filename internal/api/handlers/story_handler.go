package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/triply/triply-be/internal/apperrors"
	"github.com/triply/triply-be/internal/auth"
	"github.com/triply/triply-be/internal/models"
	"github.com/triply/triply-be/internal/services"
)

// StoryHandler handles HTTP requests for travel stories.
type StoryHandler struct {
	service services.StoryServiceProvider
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(service services.StoryServiceProvider) *StoryHandler {
	return &StoryHandler{service: service}
}

// StoryPayload defines the structure for story create/edit requests. Pointer
// fields allow partial edits to leave values unchanged.
type StoryPayload struct {
	Title           *string   `json:"title"`
	Story           *string   `json:"story"`
	VisitedLocation *[]string `json:"visitedLocation"`
	ImageURL        *string   `json:"imageUrl"`
	VisitedDate     *int64    `json:"visitedDate"`
	IsFavourite     *bool     `json:"isFavourite"`
}

func callerID(r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return "", false
	}
	return claims.UserID, true
}

// Create handles adding a new travel story.
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	var payload StoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payload.Title == nil || *payload.Title == "" ||
		payload.Story == nil || *payload.Story == "" ||
		payload.VisitedLocation == nil || len(*payload.VisitedLocation) == 0 ||
		payload.ImageURL == nil || *payload.ImageURL == "" ||
		payload.VisitedDate == nil {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	story := models.TravelStory{
		UserID:          userID,
		Title:           *payload.Title,
		Story:           *payload.Story,
		VisitedLocation: *payload.VisitedLocation,
		ImageURL:        *payload.ImageURL,
		VisitedDate:     *payload.VisitedDate,
	}
	if payload.IsFavourite != nil {
		story.IsFavourite = *payload.IsFavourite
	}

	created, err := h.service.CreateStory(story)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to add travel story")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusCreated, map[string]interface{}{
		"error":   false,
		"message": "Travel story added successfully",
		"story":   created,
	})
}

// GetAll lists the caller's stories.
func (h *StoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	stories, err := h.service.GetStoriesByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch stories")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"stories": stories,
		"message": "Fetched all travel stories successfully",
	})
}

// Update handles editing a story the caller owns.
func (h *StoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}
	id := chi.URLParam(r, "id")

	var payload StoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateStory(id, userID, services.StoryUpdate{
		Title:           payload.Title,
		Story:           payload.Story,
		VisitedLocation: payload.VisitedLocation,
		ImageURL:        payload.ImageURL,
		VisitedDate:     payload.VisitedDate,
		IsFavourite:     payload.IsFavourite,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Travel story not found or you are not authorized to edit it")
			return
		}
		log.Error().Err(err).Str("story_id", id).Msg("Failed to update travel story")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"message": "Travel story updated successfully",
		"story":   updated,
	})
}

// Delete handles removing a story the caller owns.
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteStory(id, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Travel story not found or not authorized")
			return
		}
		log.Error().Err(err).Str("story_id", id).Msg("Failed to delete travel story")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"error":     false,
		"message":   "Travel story deleted successfully",
		"deletedId": id,
	})
}

// UpdateFavourite toggles the favourite flag on a story the caller owns.
func (h *StoryHandler) UpdateFavourite(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}
	id := chi.URLParam(r, "id")

	var payload struct {
		IsFavourite bool `json:"isFavourite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.SetFavourite(id, userID, payload.IsFavourite)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Travel story not found or not authorized")
			return
		}
		log.Error().Err(err).Str("story_id", id).Msg("Failed to update favourite flag")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"error":        false,
		"message":      "isFavourite updated successfully",
		"updatedStory": updated,
	})
}

// Search handles the case-insensitive text search over the caller's stories.
func (h *StoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	stories, err := h.service.SearchStories(userID, query)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Story search failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	noun := "stories"
	if len(stories) == 1 {
		noun = "story"
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"stories": stories,
		"message": "Found " + strconv.Itoa(len(stories)) + " " + noun + " matching \"" + query + "\"",
	})
}

// FilterByDate handles the inclusive visited-date range filter.
func (h *StoryHandler) FilterByDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	start, err := strconv.ParseInt(r.URL.Query().Get("startDate"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "startDate must be epoch milliseconds")
		return
	}
	end, err := strconv.ParseInt(r.URL.Query().Get("endDate"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "endDate must be epoch milliseconds")
		return
	}

	stories, err := h.service.FilterStoriesByDate(userID, start, end)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Story date filter failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"stories": stories,
	})
}

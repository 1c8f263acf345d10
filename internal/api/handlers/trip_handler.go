package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/triply/triply-be/internal/apperrors"
	"github.com/triply/triply-be/internal/models"
	"github.com/triply/triply-be/internal/services"
)

// TripHandler handles HTTP requests for future trips.
type TripHandler struct {
	service services.TripServiceProvider
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(service services.TripServiceProvider) *TripHandler {
	return &TripHandler{service: service}
}

// TripPayload defines the structure for trip create/edit requests.
type TripPayload struct {
	Title         *string   `json:"title"`
	Destination   *string   `json:"destination"`
	StartDate     *int64    `json:"startDate"`
	EndDate       *int64    `json:"endDate"`
	Description   *string   `json:"description"`
	Budget        *float64  `json:"budget"`
	Accommodation *string   `json:"accommodation"`
	Activities    *[]string `json:"activities"`
}

// GetAll lists the caller's trips, soonest first.
func (h *TripHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	trips, err := h.service.GetTripsByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch future trips")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"trips":   trips,
		"message": "Fetched future trips successfully",
	})
}

// Create handles adding a new future trip.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	var payload TripPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payload.Title == nil || *payload.Title == "" ||
		payload.Destination == nil || *payload.Destination == "" ||
		payload.StartDate == nil || payload.EndDate == nil {
		respondError(w, http.StatusBadRequest, "Title, destination, start date, and end date are required")
		return
	}

	trip := models.FutureTrip{
		UserID:      userID,
		Title:       *payload.Title,
		Destination: *payload.Destination,
		StartDate:   *payload.StartDate,
		EndDate:     *payload.EndDate,
	}
	if payload.Description != nil {
		trip.Description = *payload.Description
	}
	if payload.Budget != nil {
		trip.Budget = *payload.Budget
	}
	if payload.Accommodation != nil {
		trip.Accommodation = *payload.Accommodation
	}
	if payload.Activities != nil {
		trip.Activities = *payload.Activities
	}

	created, err := h.service.CreateTrip(trip)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to add future trip")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusCreated, map[string]interface{}{
		"error":   false,
		"message": "Future trip added successfully",
		"trip":    created,
	})
}

// Update handles editing a trip the caller owns.
func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}
	id := chi.URLParam(r, "id")

	var payload TripPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateTrip(id, userID, services.TripUpdate{
		Title:         payload.Title,
		Destination:   payload.Destination,
		StartDate:     payload.StartDate,
		EndDate:       payload.EndDate,
		Description:   payload.Description,
		Budget:        payload.Budget,
		Accommodation: payload.Accommodation,
		Activities:    payload.Activities,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Future trip not found or you are not authorized to edit it")
			return
		}
		log.Error().Err(err).Str("trip_id", id).Msg("Failed to update future trip")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"message": "Future trip updated successfully",
		"trip":    updated,
	})
}

// Delete handles removing a trip the caller owns.
func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteTrip(id, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Future trip not found or not authorized")
			return
		}
		log.Error().Err(err).Str("trip_id", id).Msg("Failed to delete future trip")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"error":     false,
		"message":   "Future trip deleted successfully",
		"deletedId": id,
	})
}

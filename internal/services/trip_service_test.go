package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/triply/triply-be/internal/apperrors"
	"github.com/triply/triply-be/internal/models"
	"github.com/triply/triply-be/internal/services"
)

func newTrip(userID, title string, start, end int64) models.FutureTrip {
	return models.FutureTrip{
		UserID:      userID,
		Title:       title,
		Destination: title + " town",
		StartDate:   start,
		EndDate:     end,
	}
}

func TestCreateTrip_OptionalFields(t *testing.T) {
	db := newTestDB(t)
	owner, _ := createUsers(t, db)
	svc := services.NewTripService(db)

	trip := newTrip(owner, "Lisbon", dayMillis(2026, 10, 1), dayMillis(2026, 10, 8))
	trip.Description = "a week of tiles"
	trip.Budget = 1200.50
	trip.Accommodation = "hostel"
	trip.Activities = []string{"surfing", "fado"}

	created, err := svc.CreateTrip(trip)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "a week of tiles", created.Description)
	require.Equal(t, 1200.50, created.Budget)
	require.Equal(t, []string{"surfing", "fado"}, created.Activities)
}

func TestGetTripsByUser_SoonestFirst(t *testing.T) {
	db := newTestDB(t)
	owner, other := createUsers(t, db)
	svc := services.NewTripService(db)

	_, err := svc.CreateTrip(newTrip(owner, "Later", dayMillis(2027, 1, 1), dayMillis(2027, 1, 5)))
	require.NoError(t, err)
	_, err = svc.CreateTrip(newTrip(owner, "Sooner", dayMillis(2026, 11, 1), dayMillis(2026, 11, 5)))
	require.NoError(t, err)
	_, err = svc.CreateTrip(newTrip(other, "NotMine", dayMillis(2026, 1, 1), dayMillis(2026, 1, 2)))
	require.NoError(t, err)

	trips, err := svc.GetTripsByUser(owner)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	require.Equal(t, "Sooner", trips[0].Title)
	require.Equal(t, "Later", trips[1].Title)
}

func TestTripMutations_OwnershipScoped(t *testing.T) {
	db := newTestDB(t)
	owner, other := createUsers(t, db)
	svc := services.NewTripService(db)

	created, err := svc.CreateTrip(newTrip(owner, "Lisbon", dayMillis(2026, 10, 1), dayMillis(2026, 10, 8)))
	require.NoError(t, err)

	dest := "Porto"
	_, err = svc.UpdateTrip(created.ID, other, services.TripUpdate{Destination: &dest})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.DeleteTrip(created.ID, other)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	updated, err := svc.UpdateTrip(created.ID, owner, services.TripUpdate{Destination: &dest})
	require.NoError(t, err)
	require.Equal(t, "Porto", updated.Destination)
	require.Equal(t, "Lisbon", updated.Title, "untouched fields survive a partial edit")

	require.NoError(t, svc.DeleteTrip(created.ID, owner))
	require.ErrorIs(t, svc.DeleteTrip(created.ID, owner), apperrors.ErrNotFound)
}

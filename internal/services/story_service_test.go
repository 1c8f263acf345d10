package services_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/triply/triply-be/internal/apperrors"
	"github.com/triply/triply-be/internal/models"
	"github.com/triply/triply-be/internal/services"
)

func dayMillis(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func createUsers(t *testing.T, db *sql.DB) (owner, other string) {
	t.Helper()
	userSvc := services.NewUserService(db)
	u1, err := userSvc.CreateUser("Owner", "owner@x.com", "p")
	require.NoError(t, err)
	u2, err := userSvc.CreateUser("Other", "other@x.com", "p")
	require.NoError(t, err)
	return u1.ID, u2.ID
}

func newStory(userID, title string, millis int64, locations ...string) models.TravelStory {
	return models.TravelStory{
		UserID:          userID,
		Title:           title,
		Story:           "narrative for " + title,
		VisitedLocation: locations,
		ImageURL:        "http://h/uploads/" + title + ".png",
		VisitedDate:     millis,
	}
}

func TestCreateStory_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	owner, _ := createUsers(t, db)
	svc := services.NewStoryService(db)

	created, err := svc.CreateStory(newStory(owner, "Alps", dayMillis(2024, 7, 1), "Zermatt", "Chamonix"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, []string{"Zermatt", "Chamonix"}, created.VisitedLocation)
	require.Equal(t, dayMillis(2024, 7, 1), created.VisitedDate)
	require.False(t, created.IsFavourite)
}

func TestStoryMutations_OwnershipScoped(t *testing.T) {
	db := newTestDB(t)
	owner, other := createUsers(t, db)
	svc := services.NewStoryService(db)

	created, err := svc.CreateStory(newStory(owner, "Alps", dayMillis(2024, 7, 1), "Zermatt"))
	require.NoError(t, err)

	// A record that exists but belongs to someone else must be
	// indistinguishable from one that does not exist.
	newTitle := "Hijacked"
	_, err = svc.UpdateStory(created.ID, other, services.StoryUpdate{Title: &newTitle})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.DeleteStory(created.ID, other)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.SetFavourite(created.ID, other, true)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.UpdateStory("no-such-id", owner, services.StoryUpdate{Title: &newTitle})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	// The owner can do all three.
	updated, err := svc.UpdateStory(created.ID, owner, services.StoryUpdate{Title: &newTitle})
	require.NoError(t, err)
	require.Equal(t, "Hijacked", updated.Title)
	require.Equal(t, []string{"Zermatt"}, updated.VisitedLocation, "untouched fields survive a partial edit")

	fav, err := svc.SetFavourite(created.ID, owner, true)
	require.NoError(t, err)
	require.True(t, fav.IsFavourite)

	require.NoError(t, svc.DeleteStory(created.ID, owner))
	_, err = svc.UpdateStory(created.ID, owner, services.StoryUpdate{})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetStoriesByUser_FavouritesFirst(t *testing.T) {
	db := newTestDB(t)
	owner, _ := createUsers(t, db)
	svc := services.NewStoryService(db)

	_, err := svc.CreateStory(newStory(owner, "Plain", dayMillis(2024, 1, 1), "A"))
	require.NoError(t, err)
	fav, err := svc.CreateStory(newStory(owner, "Starred", dayMillis(2024, 2, 1), "B"))
	require.NoError(t, err)
	_, err = svc.SetFavourite(fav.ID, owner, true)
	require.NoError(t, err)

	stories, err := svc.GetStoriesByUser(owner)
	require.NoError(t, err)
	require.Len(t, stories, 2)
	require.Equal(t, "Starred", stories[0].Title)
}

func TestSearchStories(t *testing.T) {
	db := newTestDB(t)
	owner, other := createUsers(t, db)
	svc := services.NewStoryService(db)

	_, err := svc.CreateStory(newStory(owner, "City break", dayMillis(2024, 3, 1), "paris"))
	require.NoError(t, err)
	_, err = svc.CreateStory(newStory(owner, "Beach week", dayMillis(2024, 4, 1), "Nice"))
	require.NoError(t, err)
	// Another user's matching story must never surface.
	_, err = svc.CreateStory(newStory(other, "Paris again", dayMillis(2024, 5, 1), "Paris"))
	require.NoError(t, err)

	t.Run("case-insensitive location match", func(t *testing.T) {
		stories, err := svc.SearchStories(owner, "Paris")
		require.NoError(t, err)
		require.Len(t, stories, 1)
		require.Equal(t, "City break", stories[0].Title)
	})

	t.Run("narrative match", func(t *testing.T) {
		stories, err := svc.SearchStories(owner, "NARRATIVE FOR BEACH")
		require.NoError(t, err)
		require.Len(t, stories, 1)
		require.Equal(t, "Beach week", stories[0].Title)
	})

	t.Run("no match", func(t *testing.T) {
		stories, err := svc.SearchStories(owner, "tokyo")
		require.NoError(t, err)
		require.Empty(t, stories)
	})
}

func TestFilterStoriesByDate_InclusiveBounds(t *testing.T) {
	db := newTestDB(t)
	owner, _ := createUsers(t, db)
	svc := services.NewStoryService(db)

	day := dayMillis(2024, 6, 15)
	_, err := svc.CreateStory(newStory(owner, "OnDay", day, "X"))
	require.NoError(t, err)
	_, err = svc.CreateStory(newStory(owner, "Before", day-1, "X"))
	require.NoError(t, err)
	_, err = svc.CreateStory(newStory(owner, "After", day+1, "X"))
	require.NoError(t, err)

	stories, err := svc.FilterStoriesByDate(owner, day, day)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	require.Equal(t, "OnDay", stories[0].Title)

	stories, err = svc.FilterStoriesByDate(owner, day-1, day+1)
	require.NoError(t, err)
	require.Len(t, stories, 3)
}

func TestReferencedImageFilenames(t *testing.T) {
	db := newTestDB(t)
	owner, _ := createUsers(t, db)
	svc := services.NewStoryService(db)

	_, err := svc.CreateStory(newStory(owner, "pic", dayMillis(2024, 1, 1), "A"))
	require.NoError(t, err)

	names, err := svc.ReferencedImageFilenames()
	require.NoError(t, err)
	require.True(t, names["pic.png"])
	require.False(t, names["unrelated.png"])
}

package services_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"tournament-portal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestOpenTournamentListingOrderedByRegistrationStart(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()

	mk := func(title string, start time.Time, status models.TournamentStatus) {
		require.NoError(t, env.db.Create(&models.Tournament{
			ID:                uuid.NewString(),
			Title:             title,
			Category:          "painting",
			RegistrationStart: start,
			Status:            status,
		}).Error)
	}
	mk("Oldest Open", now.Add(-72*time.Hour), models.TournamentOpen)
	mk("Newest Open", now.Add(-1*time.Hour), models.TournamentOpen)
	mk("Middle Open", now.Add(-24*time.Hour), models.TournamentOpen)
	mk("Closed", now.Add(-2*time.Hour), models.TournamentClosed)
	mk("Coming Soon", now.Add(48*time.Hour), models.TournamentComingSoon)

	resp := env.doJSON(t, "GET", "/tournaments", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []models.Tournament
	decodeBody(t, resp, &got)
	require.Len(t, got, 3)
	require.Equal(t, "Newest Open", got[0].Title)
	require.Equal(t, "Middle Open", got[1].Title)
	require.Equal(t, "Oldest Open", got[2].Title)
}

func TestAdminListingIncludesEveryStatus(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	for _, status := range []models.TournamentStatus{
		models.TournamentOpen, models.TournamentClosed, models.TournamentComingSoon,
	} {
		require.NoError(t, env.db.Create(&models.Tournament{
			ID:                uuid.NewString(),
			Title:             string(status),
			Category:          "painting",
			RegistrationStart: now,
			Status:            status,
		}).Error)
	}

	resp := env.doJSON(t, "GET", "/admin/tournaments", "admin-1", nil, "admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []models.Tournament
	decodeBody(t, resp, &got)
	require.Len(t, got, 3)
}

func TestCreateTournament(t *testing.T) {
	env := newTestEnv(t)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	form := url.Values{}
	form.Set("title", "Winter Design Challenge")
	form.Set("description", "Posters only")
	form.Set("category", "design")
	form.Set("registration_start", start.Format(time.RFC3339))
	form.Set("registration_end", start.Add(14*24*time.Hour).Format(time.RFC3339))
	form.Set("entry_fee", "250")

	resp := env.doForm(t, "POST", "/admin/tournaments", "admin-1", form, "admin")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got models.Tournament
	decodeBody(t, resp, &got)
	require.NotEmpty(t, got.ID)
	require.Equal(t, "winter-design-challenge", got.Slug)
	require.Equal(t, models.TournamentComingSoon, got.Status)
	require.EqualValues(t, 250, got.EntryFee)
	require.True(t, got.RegistrationStart.Equal(start))
}

func TestCreateTournamentValidation(t *testing.T) {
	env := newTestEnv(t)

	// missing category
	form := url.Values{}
	form.Set("title", "Winter Design Challenge")
	form.Set("registration_start", time.Now().Format(time.RFC3339))
	resp := env.doForm(t, "POST", "/admin/tournaments", "admin-1", form, "admin")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// bad date
	form.Set("category", "design")
	form.Set("registration_start", "tomorrow")
	resp = env.doForm(t, "POST", "/admin/tournaments", "admin-1", form, "admin")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// negative fee
	form.Set("registration_start", time.Now().Format(time.RFC3339))
	form.Set("entry_fee", "-5")
	resp = env.doForm(t, "POST", "/admin/tournaments", "admin-1", form, "admin")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, env.db.Model(&models.Tournament{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateTournamentRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{}
	form.Set("title", "Winter Design Challenge")
	form.Set("category", "design")
	form.Set("registration_start", time.Now().Format(time.RFC3339))

	resp := env.doForm(t, "POST", "/admin/tournaments", "user-1", form)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// no user context at all
	resp = env.doForm(t, "POST", "/admin/tournaments", "", form)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateAndDeleteTournament(t *testing.T) {
	env := newTestEnv(t)
	tournament := seedTournament(t, env, models.TournamentComingSoon, time.Now().Add(24*time.Hour), 100)

	form := url.Values{}
	form.Set("status", string(models.TournamentOpen))
	form.Set("entry_fee", "150")
	resp := env.doForm(t, "PUT", "/admin/tournaments/"+tournament.ID, "admin-1", form, "admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Tournament
	require.NoError(t, env.db.First(&got, "id = ?", tournament.ID).Error)
	require.Equal(t, models.TournamentOpen, got.Status)
	require.EqualValues(t, 150, got.EntryFee)

	resp = env.doJSON(t, "DELETE", "/admin/tournaments/"+tournament.ID, "admin-1", nil, "admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.doJSON(t, "DELETE", "/admin/tournaments/"+tournament.ID, "admin-1", nil, "admin")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetTournamentByID(t *testing.T) {
	env := newTestEnv(t)
	tournament := seedTournament(t, env, models.TournamentOpen, time.Now().Add(-time.Hour), 100)

	resp := env.doJSON(t, "GET", "/tournaments/"+tournament.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Tournament
	decodeBody(t, resp, &got)
	require.Equal(t, tournament.ID, got.ID)
	require.Equal(t, "Summer Art Open", got.Title)

	resp = env.doJSON(t, "GET", "/tournaments/"+uuid.NewString(), "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

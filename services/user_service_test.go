package services_test

import (
	"net/http"
	"testing"
	"time"

	"tournament-portal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSyncUserFindOrCreate(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doJSON(t, "POST", "/users/sync", "", map[string]string{
		"email": "Asha.Verma@Example.COM ",
		"name":  "Asha Verma",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.User
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "asha.verma@example.com", created.Email)
	require.Equal(t, models.RoleUser, created.Role)

	// second sync for the same email returns the existing account
	resp = env.doJSON(t, "POST", "/users/sync", "", map[string]string{
		"email": "asha.verma@example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var found models.User
	decodeBody(t, resp, &found)
	require.Equal(t, created.ID, found.ID)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSyncUserRequiresEmail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doJSON(t, "POST", "/users/sync", "", map[string]string{"name": "No Email"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t)
	tournament := seedTournament(t, env, models.TournamentOpen, time.Now().Add(-time.Hour), 100)

	require.NoError(t, env.db.Create(&models.User{ID: uuid.NewString(), Email: "a@example.com"}).Error)
	require.NoError(t, env.db.Create(&models.Submission{
		ID: uuid.NewString(), UserID: "user-1", TournamentID: tournament.ID,
		Title: "One", Status: models.SubmissionPending,
	}).Error)
	require.NoError(t, env.db.Create(&models.Submission{
		ID: uuid.NewString(), UserID: "user-2", TournamentID: tournament.ID,
		Title: "Two", Status: models.SubmissionApproved,
	}).Error)

	resp := env.doJSON(t, "GET", "/admin/stats", "admin-1", nil, "admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats map[string]int64
	decodeBody(t, resp, &stats)
	require.EqualValues(t, 1, stats["total_users"])
	require.EqualValues(t, 1, stats["total_tournaments"])
	require.EqualValues(t, 2, stats["total_submissions"])
	require.EqualValues(t, 1, stats["pending_submissions"])
	require.EqualValues(t, 0, stats["total_certificates"])
}

func TestMyStats(t *testing.T) {
	env := newTestEnv(t)
	tournament := seedTournament(t, env, models.TournamentOpen, time.Now().Add(-time.Hour), 100)

	require.NoError(t, env.db.Create(&models.Submission{
		ID: uuid.NewString(), UserID: "user-1", TournamentID: tournament.ID,
		Title: "Mine", Status: models.SubmissionPending,
	}).Error)
	require.NoError(t, env.db.Create(&models.Submission{
		ID: uuid.NewString(), UserID: "user-2", TournamentID: tournament.ID,
		Title: "Theirs", Status: models.SubmissionPending,
	}).Error)

	resp := env.doJSON(t, "GET", "/users/me/stats", "user-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats map[string]int64
	decodeBody(t, resp, &stats)
	require.EqualValues(t, 1, stats["total_submissions"])
	require.EqualValues(t, 1, stats["pending_submissions"])
	require.EqualValues(t, 0, stats["approved_submissions"])
}

func TestSearchUsers(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&models.User{ID: uuid.NewString(), Email: "asha@example.com", Name: "Asha Verma"}).Error)
	require.NoError(t, env.db.Create(&models.User{ID: uuid.NewString(), Email: "ravi@example.com", Name: "Ravi Kumar"}).Error)

	resp := env.doJSON(t, "GET", "/admin/users/search?q=asha", "admin-1", nil, "admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []models.User
	decodeBody(t, resp, &got)
	require.Len(t, got, 1)
	require.Equal(t, "asha@example.com", got[0].Email)
}

package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devpulse/internal/ai"
	"devpulse/internal/crypto"
	httpapi "devpulse/internal/http"
	"devpulse/internal/models"
	"devpulse/internal/repository"
	"devpulse/internal/router"
	"devpulse/internal/service"
	"devpulse/internal/testhelpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

func setupServer(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	t.Cleanup(func() { testhelpers.CleanDB(t, db) })
	repo := repository.New(db)
	log := zap.NewNop()

	cipher, err := crypto.New([]byte("devpulse-dev-key-32-bytes-long!!"))
	require.NoError(t, err)

	svcs := service.New(service.Deps{
		Repo:       repo,
		Log:        log,
		Cipher:     cipher,
		MockAI:     ai.MockClient{},
		Breaker:    ai.NewBreaker(3, time.Minute),
		SessionTTL: time.Hour,
	})
	return db, router.Router(httpapi.New(svcs, log))
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env),
		"response body: %s", w.Body.String())
	return w.Code, env
}

func registerAndLogin(t *testing.T, r *gin.Engine, login, team string) (string, string) {
	t.Helper()

	status, env := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"login": login, "name": login, "email": login + "@example.com",
		"password": "password123!", "team_name": team,
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)

	status, env = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": login + "@example.com", "password": "password123!",
	})
	require.Equal(t, http.StatusOK, status)

	var session struct {
		Token string `json:"token"`
		User  struct {
			UserID string `json:"user_id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.Token)
	return session.Token, session.User.UserID
}

func TestAPI_RequiresAuthentication(t *testing.T) {
	_, r := setupServer(t)

	status, env := doJSON(t, r, http.MethodGet, "/api/analytics/productivity?user_id=x", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	assert.False(t, env.Success)

	status, _ = doJSON(t, r, http.MethodGet, "/api/analytics/burnout?user_id=x", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_RegisterLoginAnalytics(t *testing.T) {
	db, r := setupServer(t)

	token, userID := registerAndLogin(t, r, "alice", "platform")

	// Seed some activity for the window.
	gh := testhelpers.CreateTestRepo(t, db, "acme", "api")
	testhelpers.SeedCommit(t, db, gh.ID, "alice", time.Now().UTC().Add(-48*time.Hour))
	testhelpers.SeedPullRequest(t, db, gh.ID, "alice", time.Now().UTC().Add(-72*time.Hour), 4*time.Hour)

	status, env := doJSON(t, r, http.MethodGet,
		"/api/analytics/productivity?user_id="+userID+"&days=30", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var prod struct {
		TotalCommits int `json:"total_commits"`
		TotalPRs     int `json:"total_prs"`
		Days         []struct {
			Date    string `json:"date"`
			Commits int    `json:"commits"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &prod))
	assert.Equal(t, 1, prod.TotalCommits)
	assert.Equal(t, 1, prod.TotalPRs)
	assert.Len(t, prod.Days, 30)

	status, env = doJSON(t, r, http.MethodGet,
		"/api/analytics/burnout?user_id="+userID, token, nil)
	require.Equal(t, http.StatusOK, status)

	var burnout struct {
		RiskLevel string  `json:"risk_level"`
		RiskScore float64 `json:"risk_score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &burnout))
	assert.Contains(t, []string{"LOW", "MODERATE", "HIGH", "CRITICAL"}, burnout.RiskLevel)

	status, env = doJSON(t, r, http.MethodGet,
		"/api/analytics/team?team=platform", token, nil)
	require.Equal(t, http.StatusOK, status)

	var team struct {
		MemberCount int `json:"member_count"`
		CommitCount int `json:"commit_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &team))
	assert.Equal(t, 1, team.MemberCount)
	assert.Equal(t, 1, team.CommitCount)

	// Bad query parameters are rejected before the service layer.
	status, env = doJSON(t, r, http.MethodGet,
		"/api/analytics/productivity?user_id="+userID+"&days=nope", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestAPI_SensitiveDataAccessControl(t *testing.T) {
	_, r := setupServer(t)

	aliceToken, aliceID := registerAndLogin(t, r, "alice", "platform")
	bobToken, _ := registerAndLogin(t, r, "bob", "platform")

	path := "/api/users/" + aliceID + "/sensitive/token/github"

	status, _ := doJSON(t, r, http.MethodPut, path, aliceToken, gin.H{"value": "ghp_secret"})
	require.Equal(t, http.StatusOK, status)

	status, env := doJSON(t, r, http.MethodGet, path, aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	var payload struct {
		Value string `json:"value"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "ghp_secret", payload.Value)

	// Another user cannot touch it.
	status, env = doJSON(t, r, http.MethodGet, path, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	// Accesses show up in the audit trail.
	status, env = doJSON(t, r, http.MethodGet, "/api/users/"+aliceID+"/audit", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	var audit struct {
		Audit []struct {
			Action string `json:"action"`
		} `json:"audit"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &audit))
	assert.Len(t, audit.Audit, 2)

	status, _ = doJSON(t, r, http.MethodDelete, path, aliceToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = doJSON(t, r, http.MethodGet, path, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestAPI_AdminModeAndMockSync(t *testing.T) {
	db, r := setupServer(t)

	token, userID := registerAndLogin(t, r, "alice", "platform")

	// Mode management is admin-only.
	status, env := doJSON(t, r, http.MethodPut, "/api/admin/mode", token, gin.H{"mode": "MOCK"})
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	require.NoError(t, db.Model(&models.User{}).
		Where("user_id = ?", userID).Update("is_admin", true).Error)

	status, env = doJSON(t, r, http.MethodPut, "/api/admin/mode", token, gin.H{"mode": "MOCK"})
	require.Equal(t, http.StatusOK, status)
	var mode struct {
		Mode string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &mode))
	assert.Equal(t, "MOCK", mode.Mode)

	status, env = doJSON(t, r, http.MethodPut, "/api/admin/mode", token, gin.H{"mode": "BOGUS"})
	assert.Equal(t, http.StatusBadRequest, status)

	// In mock mode a sync works without any upstream credentials.
	status, env = doJSON(t, r, http.MethodPost, "/api/github/sync", token,
		gin.H{"owner": "acme", "name": "api"})
	require.Equal(t, http.StatusCreated, status)

	var sync struct {
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
		Commits int `json:"commits"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sync))
	assert.Equal(t, "acme/api", sync.Repository.FullName)
	assert.Greater(t, sync.Commits, 0)

	status, env = doJSON(t, r, http.MethodGet, "/api/github/repositories", token, nil)
	require.Equal(t, http.StatusOK, status)
	var repos struct {
		Repositories []struct {
			FullName string `json:"full_name"`
		} `json:"repositories"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &repos))
	require.Len(t, repos.Repositories, 1)

	// Insights run against the mock completion client.
	status, env = doJSON(t, r, http.MethodGet, "/api/insights/summary?user_id="+userID, token, nil)
	require.Equal(t, http.StatusOK, status)
	var insight struct {
		Summary string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &insight))
	assert.NotEmpty(t, insight.Summary)
}

func TestAPI_SettingsAndRetrospectives(t *testing.T) {
	_, r := setupServer(t)

	token, userID := registerAndLogin(t, r, "alice", "platform")

	status, env := doJSON(t, r, http.MethodGet, "/api/users/"+userID+"/settings", token, nil)
	require.Equal(t, http.StatusOK, status)
	var settings struct {
		LateNightStart int `json:"late_night_start"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &settings))
	assert.Equal(t, 22, settings.LateNightStart)

	status, env = doJSON(t, r, http.MethodPut, "/api/users/"+userID+"/settings", token, gin.H{
		"workday_start_hour": 10, "workday_end_hour": 18,
		"late_night_start": 21, "notifications_on": true, "theme": "dark",
	})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &settings))
	assert.Equal(t, 21, settings.LateNightStart)

	status, env = doJSON(t, r, http.MethodPost, "/api/analytics/retrospectives", token,
		gin.H{"team": "platform", "days": 30})
	require.Equal(t, http.StatusCreated, status)
	var retro struct {
		TeamName        string  `json:"team_name"`
		TeamHealthScore float64 `json:"team_health_score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &retro))
	assert.Equal(t, "platform", retro.TeamName)

	status, env = doJSON(t, r, http.MethodGet, "/api/analytics/retrospectives?team=platform", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Retrospectives []json.RawMessage `json:"retrospectives"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list.Retrospectives, 1)
}

func TestAPI_LogoutInvalidatesSession(t *testing.T) {
	_, r := setupServer(t)

	token, userID := registerAndLogin(t, r, "alice", "platform")

	status, _ := doJSON(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, env := doJSON(t, r, http.MethodGet, "/api/users/"+userID+"/settings", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

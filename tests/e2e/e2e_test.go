package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"openstage/internal/database"
	"openstage/internal/domain"
	"openstage/internal/middleware"
	"openstage/internal/modules/appointments"
	"openstage/internal/modules/auth"
	"openstage/internal/modules/events"
	"openstage/internal/modules/lineup"
	"openstage/internal/modules/live"
	"openstage/internal/modules/slots"
	"openstage/internal/notify"
	jwtsvc "openstage/internal/pkg/jwt"
	"openstage/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type E2ETestSuite struct {
	router *gin.Engine
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	// no redis and no broker in tests; the dispatcher still exercises
	// the websocket hub path
	hub := live.NewHub()
	t.Cleanup(hub.Close)
	dispatcher := notify.NewDispatcher(nil, hub)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	eventsHandler := events.NewHandler(events.NewService(eventRepo, serviceRepo))
	slotsHandler := slots.NewHandler(slots.NewService(slotRepo, nil, dispatcher))
	appointmentsHandler := appointments.NewHandler(appointments.NewService(appointmentRepo, dispatcher))
	lineupHandler := lineup.NewHandler(lineup.NewService(eventRepo, slotRepo, userRepo, nil, dispatcher))

	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		eventsHandler.RegisterPublicRoutes(v1)
		slotsHandler.RegisterPublicRoutes(v1)
		lineupHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(jwtService))
		{
			slotsHandler.RegisterRoutes(protected)
			appointmentsHandler.RegisterRoutes(protected)
			lineupHandler.RegisterRoutes(protected)

			hosts := protected.Group("/")
			hosts.Use(middleware.RequireRole(string(domain.RoleHost), string(domain.RoleAdmin)))
			eventsHandler.RegisterRoutes(hosts)
		}
	}

	return &E2ETestSuite{router: r}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "raw body: %s", w.Body.String())
	return &resp
}

func (s *E2ETestSuite) register(t *testing.T, email, role string) (token string, userID int64) {
	t.Helper()
	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"email":    email,
		"password": "Password123!",
		"name":     email,
		"role":     role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", email, w.Body.String())

	resp := parseResponse(t, w)
	token = resp.Data["token"].(string)
	userID = int64(resp.Data["user"].(map[string]interface{})["id"].(float64))
	return token, userID
}

func (s *E2ETestSuite) createEvent(t *testing.T, token string, showcase bool, slotCount int) int64 {
	t.Helper()
	w := s.makeRequest("POST", "/api/v1/events", map[string]interface{}{
		"title":       "Test Night",
		"is_showcase": showcase,
		"starts_at":   time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		"slot_count":  slotCount,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "create event: %s", w.Body.String())

	resp := parseResponse(t, w)
	return int64(resp.Data["event"].(map[string]interface{})["id"].(float64))
}

func (s *E2ETestSuite) listSlotIDs(t *testing.T, eventID int64) []int64 {
	t.Helper()
	w := s.makeRequest("GET", fmt.Sprintf("/api/v1/events/%d/slots", eventID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	raw := resp.Data["slots"].([]interface{})
	ids := make([]int64, 0, len(raw))
	for _, item := range raw {
		ids = append(ids, int64(item.(map[string]interface{})["id"].(float64)))
	}
	return ids
}

// =============================================================================
// Flow 1: Registration, slot claiming and the one-slot rule
// =============================================================================

func TestFlow1_SlotClaiming(t *testing.T) {
	suite := setupTestSuite(t)

	hostToken, _ := suite.register(t, "host1@test.com", "host")
	pToken, _ := suite.register(t, "p1@test.com", "performer")
	qToken, _ := suite.register(t, "q1@test.com", "performer")

	eventID := suite.createEvent(t, hostToken, false, 5)
	slotIDs := suite.listSlotIDs(t, eventID)
	require.Len(t, slotIDs, 5)

	t.Run("POST /slots/:id/claim", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/slots/%d/claim", slotIDs[3]), nil, pToken)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
	})

	t.Run("second claim in same event is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/slots/%d/claim", slotIDs[4]), nil, pToken)
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "SLOT_CONFLICT", resp.Error.Code)
	})

	t.Run("claim of a taken slot is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/slots/%d/claim", slotIDs[3]), nil, qToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unclaim frees the slot for others", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/slots/%d/unclaim", slotIDs[3]), nil, pToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/slots/%d/claim", slotIDs[3]), nil, qToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unclaim of someone else's slot is forbidden", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/slots/%d/unclaim", slotIDs[3]), nil, pToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("GET /events/:id/slots reflects occupancy", func(t *testing.T) {
		assert.Len(t, suite.listSlotIDs(t, eventID), 4)
	})

	t.Run("performer cannot create events", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/events", map[string]interface{}{
			"title":      "Nope",
			"starts_at":  time.Now().Add(72 * time.Hour).Format(time.RFC3339),
			"slot_count": 3,
		}, pToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("claim requires authentication", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/slots/%d/claim", slotIDs[0]), nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// Flow 2: Appointment booking and overlap protection
// =============================================================================

func TestFlow2_AppointmentBooking(t *testing.T) {
	suite := setupTestSuite(t)

	hostToken, _ := suite.register(t, "host2@test.com", "host")
	pToken, _ := suite.register(t, "p2@test.com", "performer")
	qToken, _ := suite.register(t, "q2@test.com", "performer")

	var serviceID int64
	t.Run("POST /services", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/services", map[string]interface{}{
			"name":             "Rehearsal Room",
			"duration_minutes": 60,
		}, hostToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		serviceID = int64(resp.Data["service"].(map[string]interface{})["id"].(float64))
	})

	slotTime := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	var appointmentID int64

	t.Run("POST /appointments", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id":       serviceID,
			"appointment_time": slotTime.Format(time.RFC3339),
		}, pToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		appt := resp.Data["appointment"].(map[string]interface{})
		appointmentID = int64(appt["id"].(float64))
		assert.Equal(t, "pending", appt["status"])
	})

	t.Run("overlapping booking is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id":       serviceID,
			"appointment_time": slotTime.Add(30 * time.Minute).Format(time.RFC3339),
		}, qToken)
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "BOOKING_CONFLICT", resp.Error.Code)
	})

	t.Run("back-to-back booking is allowed", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id":       serviceID,
			"appointment_time": slotTime.Add(time.Hour).Format(time.RFC3339),
		}, qToken)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("past booking is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id":       serviceID,
			"appointment_time": time.Now().Add(-time.Hour).Format(time.RFC3339),
		}, pToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("cancel frees the interval", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/appointments/%d/cancel", appointmentID), nil, pToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id":       serviceID,
			"appointment_time": slotTime.Format(time.RFC3339),
		}, qToken)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("cancel of someone else's appointment is forbidden", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id":       serviceID,
			"appointment_time": slotTime.Add(5 * time.Hour).Format(time.RFC3339),
		}, pToken)
		require.Equal(t, http.StatusCreated, w.Code)
		resp := parseResponse(t, w)
		otherID := int64(resp.Data["appointment"].(map[string]interface{})["id"].(float64))

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/appointments/%d/cancel", otherID), nil, qToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("GET /appointments lists own bookings", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/appointments", nil, qToken)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Len(t, resp.Data["appointments"].([]interface{}), 2)
	})
}

// =============================================================================
// Flow 3: Showcase lineups
// =============================================================================

func TestFlow3_ShowcaseLineup(t *testing.T) {
	suite := setupTestSuite(t)

	hostToken, hostID := suite.register(t, "host3@test.com", "host")
	otherHostToken, otherHostID := suite.register(t, "host3b@test.com", "host")
	pToken, pID := suite.register(t, "p3@test.com", "performer")
	_, qID := suite.register(t, "q3@test.com", "performer")

	eventID := suite.createEvent(t, hostToken, true, 3)
	slotIDs := suite.listSlotIDs(t, eventID)
	require.Len(t, slotIDs, 3)

	t.Run("showcase slots cannot be claimed directly", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/slots/%d/claim", slotIDs[0]), nil, pToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	})

	t.Run("PUT /events/:id/lineup", func(t *testing.T) {
		w := suite.makeRequest("PUT", fmt.Sprintf("/api/v1/events/%d/lineup", eventID), map[string]interface{}{
			"performer_ids": []int64{qID, pID},
		}, hostToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		out := resp.Data["slots"].([]interface{})
		require.Len(t, out, 3)
		assert.Equal(t, float64(qID), out[0].(map[string]interface{})["performer_id"])
		assert.Equal(t, float64(pID), out[1].(map[string]interface{})["performer_id"])
		assert.Nil(t, out[2].(map[string]interface{})["performer_id"])
	})

	t.Run("another host cannot touch the lineup", func(t *testing.T) {
		w := suite.makeRequest("PUT", fmt.Sprintf("/api/v1/events/%d/lineup", eventID), map[string]interface{}{
			"performer_ids": []int64{pID},
		}, otherHostToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown performer ids are rejected", func(t *testing.T) {
		w := suite.makeRequest("PUT", fmt.Sprintf("/api/v1/events/%d/lineup", eventID), map[string]interface{}{
			"performer_ids": []int64{pID, 424242},
		}, hostToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized lineup names the first missing slot", func(t *testing.T) {
		w := suite.makeRequest("PUT", fmt.Sprintf("/api/v1/events/%d/lineup", eventID), map[string]interface{}{
			"performer_ids": []int64{pID, qID, hostID, otherHostID},
		}, hostToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := parseResponse(t, w)
		assert.Contains(t, resp.Error.Message, "Slot 3")
	})

	t.Run("GET /events/:id/lineup is public", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/events/%d/lineup", eventID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Len(t, resp.Data["slots"].([]interface{}), 3)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

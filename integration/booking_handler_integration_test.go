package booking_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Naveenverma440/activity-booking-app/internal/activity"
	"github.com/Naveenverma440/activity-booking-app/internal/auth"
	"github.com/Naveenverma440/activity-booking-app/internal/booking"
)

const testJWTSecret = "test-secret"

func setupBookingRoutes(db *sqlx.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	svc := booking.NewService(db, booking.NewRepository(db), activity.NewRepository(db), nil, 5*time.Second)
	handler := booking.NewHandler(svc)

	authed := router.Group("/api/bookings", auth.AuthMiddleware(testJWTSecret))
	authed.POST("", handler.CreateBooking)
	authed.GET("", handler.ListMyBookings)
	authed.DELETE("/:id", handler.CancelBooking)

	return router
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBookingHandler_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)

	userID := createTestUser(t, db, "httpbooker@test.com", "HTTP Booker")
	activityID := createTestActivity(t, db, "Cricket Match", 5)
	token, err := auth.GenerateAccessToken(userID, "httpbooker@test.com", testJWTSecret)
	require.NoError(t, err)

	router := setupBookingRoutes(db)

	w := doJSON(router, http.MethodPost, "/api/bookings", token, gin.H{"activity_id": activityID})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID            string `json:"id"`
			Status        string `json:"status"`
			ActivityTitle string `json:"activity_title"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "confirmed", resp.Data.Status)
	assert.Equal(t, "Cricket Match", resp.Data.ActivityTitle)

	// Second attempt by the same user is a business failure, not a 5xx.
	w = doJSON(router, http.MethodPost, "/api/bookings", token, gin.H{"activity_id": activityID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already booked")
}

func TestCreateBookingHandler_Unauthorized_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	router := setupBookingRoutes(db)

	w := doJSON(router, http.MethodPost, "/api/bookings", "", gin.H{"activity_id": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCancelBookingHandler_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)

	userID := createTestUser(t, db, "httpcanceller@test.com", "HTTP Canceller")
	activityID := createTestActivity(t, db, "Yoga Session", 5)
	token, err := auth.GenerateAccessToken(userID, "httpcanceller@test.com", testJWTSecret)
	require.NoError(t, err)

	router := setupBookingRoutes(db)

	w := doJSON(router, http.MethodPost, "/api/bookings", token, gin.H{"activity_id": activityID})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/bookings/%s", created.Data.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, availableSpots(t, db, activityID))

	// Cancelling again reports the business condition.
	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/bookings/%s", created.Data.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already been cancelled")
}

func TestListMyBookingsHandler_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)

	userID := createTestUser(t, db, "httplister@test.com", "HTTP Lister")
	first := createTestActivity(t, db, "Movie Night", 5)
	second := createTestActivity(t, db, "Tech Meetup", 5)
	token, err := auth.GenerateAccessToken(userID, "httplister@test.com", testJWTSecret)
	require.NoError(t, err)

	router := setupBookingRoutes(db)

	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/bookings", token, gin.H{"activity_id": first}).Code)
	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/bookings", token, gin.H{"activity_id": second}).Code)

	w := doJSON(router, http.MethodGet, "/api/bookings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
}

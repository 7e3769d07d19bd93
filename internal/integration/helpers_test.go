package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/Behramm10/Cine-Flow/internal/domain"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":   {},
	"requestId":   {},
	"createdAt":   {},
	"selectionId": {},
	"bookingId":   {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		switch v := m[k].(type) {
		case map[string]any:
			cleanMap(v)
		case []any:
			for _, item := range v {
				if nested, ok := item.(map[string]any); ok {
					cleanMap(nested)
				}
			}
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	script, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(script))
	require.NoError(t, err)
}

// resetState wipes every table, the cache, and the mock mailer, then
// re-seeds the catalog fixtures. Tests call it to start from a known state.
func resetState(t testing.TB, app *TestApp) {
	t.Helper()

	executeSQLFile(t, app.DB, "testdata/catalog_down.sql")

	_, err := app.DB.Exec(context.Background(), "TRUNCATE users CASCADE")
	require.NoError(t, err)

	executeSQLFile(t, app.DB, "testdata/catalog_up.sql")

	require.NoError(t, app.RedisClient.FlushAll(context.Background()).Err())

	app.Mailer.Reset()
}

// doRequest drives the full middleware chain with an in-memory recorder.
// Sequential flows use it directly instead of the Scenario table machinery.
func doRequest(t testing.TB, app *TestApp, method, url string, body io.Reader, cookies []*http.Cookie) *http.Response {
	t.Helper()

	req, err := prepareRequest(method, url, body, nil, cookies)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	return rec.Result()
}

// guestCookies returns the session cookie handed out to an anonymous visitor.
func guestCookies(t testing.TB, app *TestApp) []*http.Cookie {
	t.Helper()

	res := doRequest(t, app, "GET", "/health", nil, nil)
	defer res.Body.Close()

	cookies := res.Cookies()
	require.NotEmpty(t, cookies, "expected a guest session cookie")

	return cookies
}

// registerAndLogin creates a user through the public API and logs them in,
// returning the authenticated session cookies. The admin flag is flipped
// directly in the database since there is no endpoint for promotion.
func registerAndLogin(t testing.TB, app *TestApp, email string, admin bool) []*http.Cookie {
	t.Helper()

	registerBody := fmt.Sprintf(`{"name": %q, "email": %q, "password": %q}`, TestUserName, email, TestUserPassword)

	res := doRequest(t, app, "POST", "/users", strings.NewReader(registerBody), nil)
	res.Body.Close()
	require.Contains(t, []int{http.StatusCreated, http.StatusBadRequest}, res.StatusCode)

	if admin {
		_, err := app.DB.Exec(context.Background(), "UPDATE users SET is_admin = true WHERE email = $1", email)
		require.NoError(t, err)
	}

	loginBody := fmt.Sprintf(`{"email": %q, "password": %q}`, email, TestUserPassword)

	res = doRequest(t, app, "POST", "/sessions", strings.NewReader(loginBody), nil)
	res.Body.Close()
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	cookies := res.Cookies()
	require.NotEmpty(t, cookies, "expected a session cookie after login")

	return cookies
}

// seedBooking inserts a confirmed booking for the seed user directly into the
// database, holding the given seats for the showtime.
func seedBooking(t testing.TB, db *pgxpool.Pool, showtimeId string, seats ...string) {
	t.Helper()

	ctx := context.Background()

	var bookingId string
	err := db.QueryRow(
		ctx,
		`INSERT INTO bookings (user_id, showtime_id, total_amount, currency, status)
		 VALUES ($1, $2, $3, 'INR', 'confirmed')
		 RETURNING id`,
		TestSeedUserId, showtimeId, 200*len(seats),
	).Scan(&bookingId)
	require.NoError(t, err)

	for _, seat := range seats {
		_, err = db.Exec(
			ctx,
			`INSERT INTO booking_seats (booking_id, showtime_id, seat_label, price) VALUES ($1, $2, $3, 200)`,
			bookingId, showtimeId, seat,
		)
		require.NoError(t, err)
	}
}

// freeSeats returns n seats that are neither part of the showtime's baseline
// occupancy nor in the exclude list.
func freeSeats(n int, exclude ...string) []string {
	taken := make(map[string]bool)
	for _, label := range domain.BaselineReservedSeats(TestShowtimeId) {
		taken[label] = true
	}
	for _, label := range exclude {
		taken[label] = true
	}

	var seats []string
	for _, label := range domain.SeatLabels() {
		if taken[label] {
			continue
		}
		seats = append(seats, label)
		if len(seats) == n {
			break
		}
	}

	return seats
}

package dialplan_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialplan/dialplan"
	"github.com/dialplan/dialplan/pkg/ivr"
)

// fridayNoon is 11:00 in America/New_York, inside the example
// configuration's Friday office hours.
var fridayNoon = time.Date(2024, time.January, 5, 16, 0, 0, 0, time.UTC)

func newExampleApp(t *testing.T) *dialplan.App {
	t.Helper()

	app, err := dialplan.New(filepath.Join("examples", "config.ini"),
		dialplan.WithClock(func() time.Time { return fridayNoon }))
	require.NoError(t, err)
	return app
}

func TestNew_MissingConfig(t *testing.T) {
	_, err := dialplan.New(filepath.Join(t.TempDir(), "nope.ini"))

	var cfgErr *ivr.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestApp_ValidatesExampleConfig(t *testing.T) {
	app := newExampleApp(t)

	var visited []string
	require.NoError(t, app.Validate(func(name string) { visited = append(visited, name) }))
	assert.Contains(t, visited, "ivr_welcome")
	assert.Contains(t, visited, "hours_office")
}

func TestApp_ListenAddr(t *testing.T) {
	assert.Equal(t, ":8080", newExampleApp(t).ListenAddr())
}

func TestApp_ServesCallFlow(t *testing.T) {
	handler := newExampleApp(t).Handler()

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("welcome redirects into the menu", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/ivr", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<Play>https://cdn.example.com/welcome.mp3</Play>")
		assert.Contains(t, rec.Body.String(), "/ivr/menu</Redirect>")
	})

	t.Run("gathered digit selects the option", func(t *testing.T) {
		form := url.Values{"Digits": {"2"}}
		req := httptest.NewRequest(http.MethodPost, "/ivr/menu", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := serve(req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/ivr/menu/2</Redirect>")
	})

	t.Run("voicemail option records with tagged callbacks", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/ivr/action/voicemail_main", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "initiated_by_section=voicemail_main")
		assert.Contains(t, rec.Body.String(), `maxLength="120"`)
	})

	t.Run("health endpoint answers", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})
}

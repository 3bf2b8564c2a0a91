package webui

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/simple-note-service/internal/app"
	"github.com/haierkeys/simple-note-service/internal/dao"
	"github.com/haierkeys/simple-note-service/internal/routers"
	"github.com/haierkeys/simple-note-service/pkg/client"
	"github.com/haierkeys/simple-note-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newBackend(t *testing.T) *client.Client {
	t.Helper()
	cfg, err := app.DefaultConfig()
	require.NoError(t, err)
	cfg.Database.URL = "sqlite:///" + filepath.Join(t.TempDir(), "notes.db")

	db, err := dao.NewDBEngineWithConfig(cfg.GetDatabaseConfig(), zap.NewNop())
	require.NoError(t, err)
	a, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	uni, err := validator.Install()
	require.NoError(t, err)

	srv := httptest.NewServer(routers.NewRouter(a, uni))
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

func newUI(t *testing.T, api *client.Client) *gin.Engine {
	t.Helper()
	r, err := New(api, zap.NewNop(), 5*time.Second).Router()
	require.NoError(t, err)
	return r
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func flashOf(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, w.Code)
	u, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	return u.Query().Get("flash"), u.Query().Get("kind")
}

func TestWebUI_Flow(t *testing.T) {
	api := newBackend(t)
	ui := newUI(t, api)

	w := get(ui, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Notes App")
	assert.Contains(t, w.Body.String(), "Create a new note")

	flash, kind := flashOf(t, postForm(ui, "/notes", url.Values{"title": {"Groceries"}, "content": {"milk"}, "creator": {""}}))
	assert.Equal(t, "Note created!", flash)
	assert.Equal(t, "success", kind)

	w = get(ui, "/?flash=Note+created%21&kind=success")
	body := w.Body.String()
	assert.Contains(t, body, "Note created!")
	assert.Contains(t, body, "1: Groceries by Unknown")

	flash, _ = flashOf(t, postForm(ui, "/notes/1/update", url.Values{"title": {"Shopping"}, "content": {"eggs"}, "creator": {"Ada"}}))
	assert.Equal(t, "Note updated!", flash)

	w = get(ui, "/")
	assert.Contains(t, w.Body.String(), "1: Shopping by Ada")

	flash, _ = flashOf(t, postForm(ui, "/notes/1/delete", nil))
	assert.Equal(t, "Note deleted!", flash)

	w = get(ui, "/")
	assert.NotContains(t, w.Body.String(), "Shopping")
}

func TestWebUI_BackendErrors(t *testing.T) {
	api := newBackend(t)
	ui := newUI(t, api)

	flash, kind := flashOf(t, postForm(ui, "/notes", url.Values{"title": {""}, "content": {"x"}}))
	assert.Equal(t, "error", kind)
	assert.True(t, strings.HasPrefix(flash, "Error: Invalid params"), flash)

	flash, kind = flashOf(t, postForm(ui, "/notes/42/delete", nil))
	assert.Equal(t, "error", kind)
	assert.Equal(t, "Error: Note not found", flash)

	flash, _ = flashOf(t, postForm(ui, "/notes/abc/update", nil))
	assert.Equal(t, "Error: invalid note id", flash)
}

func TestWebUI_BackendDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	api := client.New(srv.URL)
	srv.Close()

	w := get(newUI(t, api), "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Could not fetch notes")
}

func TestWebUI_MalformedFormLogged(t *testing.T) {
	api := newBackend(t)
	core, logs := observer.New(zap.DebugLevel)
	ui, err := New(api, zap.New(core), 5*time.Second).Router()
	require.NoError(t, err)

	for _, path := range []string{"/notes", "/notes/1/update"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("title=%zz"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		ui.ServeHTTP(w, req)

		_, kind := flashOf(t, w)
		assert.Equal(t, "error", kind)
	}

	assert.Equal(t, 1, logs.FilterMessage("webui.create bind err").Len())
	assert.Equal(t, 1, logs.FilterMessage("webui.update bind err").Len())
}

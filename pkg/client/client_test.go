package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", WithTimeout(5*time.Second))
}

func TestClient_List(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/notes", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":1,"title":"a","content":"b","creator":null,"time_created":"2024-01-02T03:04:05Z","time_updated":null}]`)
	})

	notes, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, int64(1), notes[0].ID)
	assert.Nil(t, notes[0].Creator)
	assert.Equal(t, "Unknown", notes[0].CreatorOr("Unknown"))
	assert.Equal(t, 2024, notes[0].TimeCreated.Year())
}

func TestClient_CreateSendsJSON(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"title":"t","content":"","creator":null}`, string(body))
		_, _ = io.WriteString(w, `{"id":7,"title":"t","content":"","creator":null,"time_created":"2024-01-02T03:04:05Z","time_updated":null}`)
	})

	n, err := c.Create(context.Background(), NoteInput{Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), n.ID)
}

func TestClient_UpdateAndDeleteMessages(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notes/3", r.URL.Path)
		switch r.Method {
		case http.MethodPut:
			_, _ = io.WriteString(w, `{"message":"Note: x was successfully updated (id: 3)"}`)
		case http.MethodDelete:
			assert.Empty(t, r.Header.Get("Content-Type"))
			_, _ = io.WriteString(w, `{"message":"Note: x was successfully deleted (id: 3)"}`)
		}
	})

	msg, err := c.Update(context.Background(), 3, NoteInput{Title: "x", Content: "y"})
	require.NoError(t, err)
	assert.Contains(t, msg, "successfully updated")

	msg, err = c.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.Contains(t, msg, "successfully deleted")
}

func TestClient_APIError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Note not found"}`)
	})

	_, err := c.Get(context.Background(), 9)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Note not found", apiErr.Detail)
	assert.Equal(t, "Note not found (status 404)", apiErr.Error())
}

func TestClient_Root(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `"This is the application backend."`)
	})

	s, err := c.Root(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "This is the application backend.", s)
}

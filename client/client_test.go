package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeServer answers like the real API for one anonymous session.
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	var stored []Message
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/messages", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["content"] == "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":"content can't be blank"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "sms_session_id", Value: "sess-abc", Path: "/"})
		message := Message{ID: "m1", PhoneNumber: body["phone_number"], Content: body["content"],
			CreatedAt: time.Now().UTC().Truncate(time.Second), SessionID: "sess-abc"}
		stored = append([]Message{message}, stored...)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(message)
	})
	mux.HandleFunc("GET /api/messages", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("sms_session_id"); err != nil {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_ = json.NewEncoder(w).Encode(stored)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func Test_Client_Keeps_Session_Cookie(t *testing.T) {
	req := require.New(t)
	server := fakeServer(t)
	c, err := New(server.URL, 5*time.Second)
	req.NoError(err)
	ctx := context.Background()

	messages, err := c.ListMessages(ctx)
	req.NoError(err)
	req.Empty(messages)

	sent, err := c.SendMessage(ctx, "+15551234567", "hello")
	req.NoError(err)
	req.Equal("sess-abc", sent.Owner())

	session, ok := c.Cookie("sms_session_id")
	req.True(ok)
	req.Equal("sess-abc", session)

	messages, err = c.ListMessages(ctx)
	req.NoError(err)
	req.Equal([]Message{sent}, messages)
}

func Test_Client_Surfaces_Api_Errors(t *testing.T) {
	req := require.New(t)
	server := fakeServer(t)
	c, err := New(server.URL, 5*time.Second)
	req.NoError(err)

	_, err = c.SendMessage(context.Background(), "+15551234567", "")
	var apiErr *APIError
	req.True(errors.As(err, &apiErr))
	req.Equal(http.StatusUnprocessableEntity, apiErr.Status)
	req.Equal("content can't be blank", apiErr.Message)

	_, err = c.CurrentUser(context.Background())
	req.True(errors.As(err, &apiErr))
	req.Equal(http.StatusNotFound, apiErr.Status)
}

func Test_Client_Resumes_Seeded_Session(t *testing.T) {
	req := require.New(t)
	server := fakeServer(t)
	c, err := New(server.URL, 5*time.Second)
	req.NoError(err)

	c.SetCookie("sms_session_id", "sess-abc")
	value, ok := c.Cookie("sms_session_id")
	req.True(ok)
	req.Equal("sess-abc", value)
}

package xai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "Ferry returns to service")

		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message message `json:"message"`
			}{
				{Message: message{Role: "assistant", Content: "The ferry is back."}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", "", nil)
	c.baseURL = srv.URL

	summary, err := c.SummarizeNews(context.Background(), "Ferry returns to service", "After repairs the ferry resumed its route.")
	require.NoError(t, err)
	assert.Equal(t, "The ferry is back.", summary)
}

func TestSummarizeNewsErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewClient("test-key", "", nil)
		c.baseURL = srv.URL

		_, err := c.SummarizeNews(context.Background(), "t", "b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status=429")
	})

	t.Run("empty completion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		c := NewClient("test-key", "", nil)
		c.baseURL = srv.URL

		_, err := c.SummarizeNews(context.Background(), "t", "b")
		require.Error(t, err)
	})
}

package main

import (
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/stretchr/testify/require"
)

func TestRandGestureCoversRoutes(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		g := randGesture(r)
		seen[g.path] = true
	}
	require.Len(t, seen, 8)
}

func TestRunSession(t *testing.T) {
	id := uuid.New()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method == "POST" && r.URL.Path == "/v1/sessions" {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"` + id.String() + `"}`))
			return
		}
		require.Contains(t, r.URL.Path, id.String())
		w.Write([]byte(`{}`))
	}))
	defer server.Close()
	c := &client{endpoint: server.URL + "/v1", http: server.Client()}
	bar := progressbar.DefaultSilent(10)
	err := c.runSession(rand.New(rand.NewPCG(3, 4)), 10, bar)
	require.NoError(t, err)
	// create, gestures, delete
	require.Equal(t, int32(12), calls.Load())
}

func TestRunSessionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()
	c := &client{endpoint: server.URL + "/v1", http: server.Client()}
	err := c.runSession(rand.New(rand.NewPCG(3, 4)), 10, progressbar.DefaultSilent(10))
	require.ErrorContains(t, err, "429")
}

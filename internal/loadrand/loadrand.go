package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/semafind/closepairs/catalog"
	"github.com/semafind/closepairs/httpapi"
	"github.com/semafind/closepairs/session"
)

// client drives a running server with random gestures.
type client struct {
	endpoint string
	http     *http.Client
}

func (c *client) makeRequest(method string, path string, body any, resp any) error {
	// Create request
	var encBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode body: %w", err)
		}
		encBody = bytes.NewReader(jsonBody)
	}
	req, err := http.NewRequest(method, c.endpoint+path, encBody)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Send request
	startTime := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()
	log.Debug().Str("method", method).Str("path", path).Int("status", res.StatusCode).Dur("took", time.Since(startTime)).Msg("request")
	// Read response
	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}
	if res.StatusCode >= 300 {
		return fmt.Errorf("%s %s returned %d: %s", method, path, res.StatusCode, respBody)
	}
	if resp != nil {
		return json.Unmarshal(respBody, resp)
	}
	return nil
}

type gestureCall struct {
	method string
	path   string
	body   any
}

// randGesture picks one of the session gestures with plausible arguments.
func randGesture(r *rand.Rand) gestureCall {
	x, y := r.Float64()*800, r.Float64()*600
	switch r.IntN(8) {
	case 0:
		n := r.IntN(catalog.MaxN + 1)
		return gestureCall{"PUT", "/n", httpapi.SetNRequest{N: &n}}
	case 1:
		return gestureCall{"POST", "/wheel", httpapi.WheelRequest{DeltaY: r.NormFloat64() * 100}}
	case 2:
		return gestureCall{"POST", "/drag/start", httpapi.PointerRequest{X: x, Y: y}}
	case 3:
		return gestureCall{"POST", "/drag/move", httpapi.PointerRequest{X: x, Y: y}}
	case 4:
		return gestureCall{"POST", "/drag/end", nil}
	case 5:
		return gestureCall{"POST", "/leave", nil}
	case 6:
		return gestureCall{"POST", "/resize", httpapi.ResizeRequest{WindowWidth: 300 + x, WindowHeight: 300 + y}}
	default:
		return gestureCall{"GET", "/render.svg", nil}
	}
}

func (c *client) runSession(r *rand.Rand, gestures int, bar *progressbar.ProgressBar) error {
	var state session.State
	if err := c.makeRequest("POST", "/sessions", nil, &state); err != nil {
		return err
	}
	base := "/sessions/" + state.Id.String()
	defer c.makeRequest("DELETE", base, nil, nil)
	for i := 0; i < gestures; i++ {
		g := randGesture(r)
		if err := c.makeRequest(g.method, base+g.path, g.body, nil); err != nil {
			return err
		}
		bar.Add(1)
	}
	return nil
}

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8081/v1", "server endpoint")
	sessions := flag.Int("sessions", 8, "number of concurrent sessions")
	gestures := flag.Int("gestures", 500, "gestures per session")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	// ---------------------------
	c := &client{endpoint: *endpoint, http: &http.Client{Timeout: 10 * time.Second}}
	if err := c.makeRequest("GET", "/ping", nil, nil); err != nil {
		log.Fatal().Err(err).Msg("server is not reachable")
	}
	// ---------------------------
	bar := progressbar.Default(int64(*sessions * *gestures))
	startTime := time.Now()
	var wg sync.WaitGroup
	var failed sync.Map
	for i := 0; i < *sessions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := rand.New(rand.NewPCG(*seed, uint64(i)))
			if err := c.runSession(r, *gestures, bar); err != nil {
				failed.Store(i, err)
			}
		}(i)
	}
	wg.Wait()
	failed.Range(func(k, v any) bool {
		log.Error().Err(v.(error)).Int("session", k.(int)).Msg("session failed")
		return true
	})
	log.Info().Dur("took", time.Since(startTime)).Int("sessions", *sessions).Int("gestures", *gestures).Msg("loadrand done")
}

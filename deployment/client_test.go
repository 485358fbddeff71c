package deployment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv(envProjectID, "1234")
		t.Setenv(envAPIKey, "ei_secret")
		t.Setenv(envStudioHost, "")
		t.Setenv(envEngine, "")

		cfg, err := ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "1234", cfg.ProjectID)
		assert.Equal(t, DefaultStudioHost, cfg.StudioHost)
		assert.Equal(t, DefaultEngine, cfg.Engine)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv(envProjectID, "1234")
		t.Setenv(envAPIKey, "ei_secret")
		t.Setenv(envStudioHost, "https://studio.example.com")
		t.Setenv(envEngine, "tflite")

		cfg, err := ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "https://studio.example.com", cfg.StudioHost)
		assert.Equal(t, "tflite", cfg.Engine)
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		t.Setenv(envProjectID, "")
		t.Setenv(envAPIKey, "")

		_, err := ConfigFromEnv()
		require.ErrorIs(t, err, ErrMissingCredentials)
	})
}

// fakeStudio is an httptest-backed Studio API with a configurable number of
// in-progress polls before the build job finishes.
type fakeStudio struct {
	t *testing.T

	pollsUntilDone int32
	buildFails     bool

	buildJobs atomic.Int32
	downloads atomic.Int32
	polls     atomic.Int32

	server *httptest.Server
}

func newFakeStudio(t *testing.T, pollsUntilDone int32) *fakeStudio {
	t.Helper()

	f := &fakeStudio{t: t, pollsUntilDone: pollsUntilDone}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/api/1234", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		f.requireAPIKey(r)
		impulse := 3
		writeJSON(t, w, projectResponse{Success: true, DefaultImpulseID: &impulse})
	})
	mux.HandleFunc("/v1/api/1234/jobs/build-ondevice-model", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		f.requireAPIKey(r)
		assert.Equal(t, "zip", r.URL.Query().Get("type"))
		assert.Equal(t, "3", r.URL.Query().Get("impulse"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tflite-eon", body["engine"])

		f.buildJobs.Add(1)
		writeJSON(t, w, buildJobResponse{Success: true, ID: 42})
	})
	mux.HandleFunc("/v1/api/1234/jobs/42/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		f.requireAPIKey(r)

		var resp jobStatusResponse
		resp.Success = true
		resp.Job.Category = "building"
		if f.polls.Add(1) >= f.pollsUntilDone {
			finished := time.Now().Unix()
			ok := !f.buildFails
			resp.Job.Category = "finished"
			resp.Job.Finished = &finished
			resp.Job.FinishedSuccessful = &ok
		}
		writeJSON(t, w, resp)
	})
	mux.HandleFunc("/v1/api/1234/deployment/download", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		f.requireAPIKey(r)
		f.downloads.Add(1)
		_, err := w.Write(buildTestZip(t, map[string]string{
			"model-parameters/model_metadata.h": testHeader,
		}))
		require.NoError(t, err)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeStudio) requireAPIKey(r *http.Request) {
	require.Equal(f.t, "ei_secret", r.Header.Get("x-api-key"))
}

func (f *fakeStudio) client(t *testing.T, optFns ...ClientOption) *Client {
	t.Helper()
	cfg := Config{
		ProjectID:  "1234",
		APIKey:     "ei_secret",
		StudioHost: f.server.URL,
	}
	opts := append([]ClientOption{
		WithPollInterval(time.Millisecond),
		WithRateLimiter(rate.NewLimiter(rate.Inf, 1)),
	}, optFns...)
	c, err := NewClient(cfg, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func buildTestZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestClientFetch(t *testing.T) {
	t.Run("FullPipeline", func(t *testing.T) {
		studio := newFakeStudio(t, 3)
		c := studio.client(t)

		dir := t.TempDir()
		bundle, err := c.Fetch(context.Background(), dir)
		require.NoError(t, err)

		assert.Equal(t, int32(1), studio.buildJobs.Load())
		assert.GreaterOrEqual(t, studio.polls.Load(), int32(3))

		require.NotNil(t, bundle.Metadata)
		assert.Equal(t, "wake-word", bundle.Metadata.ProjectName)

		_, err = os.Stat(filepath.Join(dir, "model-parameters", "model_metadata.h"))
		require.NoError(t, err)
	})

	t.Run("BuildFailure", func(t *testing.T) {
		studio := newFakeStudio(t, 1)
		studio.buildFails = true
		c := studio.client(t)

		_, err := c.FetchZip(context.Background())
		require.ErrorIs(t, err, ErrBuildFailed)
		assert.Equal(t, int32(0), studio.downloads.Load())
	})

	t.Run("PollBudgetExhausted", func(t *testing.T) {
		studio := newFakeStudio(t, 1<<30) // never finishes
		c := studio.client(t, WithMaxPolls(3))

		_, err := c.FetchZip(context.Background())
		require.ErrorIs(t, err, ErrBuildTimeout)
	})

	t.Run("ContextCanceled", func(t *testing.T) {
		studio := newFakeStudio(t, 1<<30)
		c := studio.client(t, WithPollInterval(time.Hour))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := c.FetchZip(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestClientErrors(t *testing.T) {
	t.Run("InvalidConfig", func(t *testing.T) {
		_, err := NewClient(Config{})
		require.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("APIErrorStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		t.Cleanup(server.Close)

		c, err := NewClient(Config{ProjectID: "1234", APIKey: "bad", StudioHost: server.URL})
		require.NoError(t, err)

		_, err = c.DefaultImpulseID(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		assert.Equal(t, "project info", apiErr.Operation)
	})
}

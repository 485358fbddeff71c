package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/hupe1980/impulsego"
	"github.com/hupe1980/impulsego/deployment"
	"github.com/hupe1980/impulsego/model"
	"github.com/hupe1980/impulsego/modelstore"
	"github.com/hupe1980/impulsego/runner"
	"github.com/hupe1980/impulsego/signal"
	"github.com/hupe1980/impulsego/testutil"
)

const testMetadataHeader = `#define EI_CLASSIFIER_PROJECT_ID 1234
#define EI_CLASSIFIER_PROJECT_OWNER "acme"
#define EI_CLASSIFIER_PROJECT_NAME "wake-word"
#define EI_CLASSIFIER_PROJECT_DEPLOY_VERSION 7
#define EI_CLASSIFIER_INPUT_FRAMES 1
#define EI_CLASSIFIER_FREQUENCY 16000
#define EI_CLASSIFIER_LABEL_COUNT 2
#define EI_CLASSIFIER_SENSOR 1
#define EI_CLASSIFIER_HAS_ANOMALY 0
#define EI_CLASSIFIER_RAW_SAMPLE_COUNT 16000
#define EI_CLASSIFIER_RAW_SAMPLES_PER_FRAME 1
#define EI_CLASSIFIER_DSP_INPUT_FRAME_SIZE 16000
#define EI_CLASSIFIER_SLICE_SIZE 4000
const char* ei_classifier_inferencing_categories[] = { "noise", "keyword" };
`

// newStudioServer serves the minimal Studio API surface the deployment
// client touches: project info, build job, job status, download.
func newStudioServer(t *testing.T) *httptest.Server {
	t.Helper()

	archive := func() []byte {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.Create("model-parameters/model_metadata.h")
		require.NoError(t, err)
		_, err = w.Write([]byte(testMetadataHeader))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		return buf.Bytes()
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/api/1234", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		fmt.Fprint(w, `{"success":true,"defaultImpulseId":3}`)
	})
	mux.HandleFunc("/v1/api/1234/jobs/build-ondevice-model", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		fmt.Fprint(w, `{"success":true,"id":42}`)
	})
	mux.HandleFunc("/v1/api/1234/jobs/42/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		resp := map[string]any{
			"success": true,
			"job": map[string]any{
				"category":           "finished",
				"finished":           time.Now().Unix(),
				"finishedSuccessful": true,
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})
	mux.HandleFunc("/v1/api/1234/deployment/download", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		_, err := w.Write(archive)
		require.NoError(t, err)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// TestDeployToInference walks the full path: fetch a deployment from the
// Studio, cache the archive, parse its metadata, and run classification
// against an engine built from that metadata.
func TestDeployToInference(t *testing.T) {
	server := newStudioServer(t)

	client, err := deployment.NewClient(deployment.Config{
		ProjectID:  "1234",
		APIKey:     "ei_secret",
		StudioHost: server.URL,
	},
		deployment.WithPollInterval(time.Millisecond),
		deployment.WithRateLimiter(rate.NewLimiter(rate.Inf, 1)),
	)
	require.NoError(t, err)

	ctx := context.Background()

	data, err := client.FetchZip(ctx)
	require.NoError(t, err)

	// Cache the archive, then read it back like a fresh process would.
	store, err := modelstore.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "wake-word-v7.zip", data))

	rc, err := store.Open(ctx, "wake-word-v7.zip")
	require.NoError(t, err)
	cached, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	bundle, err := deployment.OpenBundle(cached, t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, bundle.Metadata)
	assert.Equal(t, "wake-word", bundle.Metadata.ProjectName)
	assert.Equal(t, []string{"noise", "keyword"}, bundle.Metadata.Labels)
	assert.Equal(t, 4000, bundle.Metadata.SliceSize)

	// Stand up an engine for the fetched model and classify.
	eng := testutil.NewFakeEngine(&model.Impulse{Metadata: *bundle.Metadata})
	eng.Result = model.Result{
		Classification: []model.Classification{
			{Label: "noise", Value: 0.1},
			{Label: "keyword", Value: 0.9},
		},
	}

	classifier, err := impulsego.New(eng)
	require.NoError(t, err)
	require.NoError(t, classifier.Init())
	defer func() { require.NoError(t, classifier.Deinit()) }()

	sig, err := signal.FromBuffer(testutil.NewRNG(1).Samples(bundle.Metadata.InputFeaturesCount))
	require.NoError(t, err)

	var res model.Result
	require.NoError(t, classifier.RunClassifier(ctx, sig, &res, false))
	require.Len(t, res.Classification, 2)
	assert.Equal(t, float32(0.9), res.Classification[1].Value)

	// The runner facade sees the same metadata.
	m, err := runner.New(classifier)
	require.NoError(t, err)
	assert.Equal(t, runner.SensorMicrophone, m.SensorType())
	assert.Equal(t, bundle.Metadata.InputFeaturesCount, m.InputSize())

	resp, err := m.Infer(ctx, testutil.NewRNG(2).Samples(bundle.Metadata.InputFeaturesCount))
	require.NoError(t, err)
	cr, ok := resp.Result.(runner.ClassificationResult)
	require.True(t, ok)
	assert.Equal(t, float32(0.9), cr.Classification["keyword"])
}

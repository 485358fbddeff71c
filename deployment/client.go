package deployment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/hupe1980/impulsego"
)

// Build jobs typically finish within a few minutes; the poll budget below
// matches the Studio's own guidance of roughly ten minutes.
const (
	defaultPollInterval = 5 * time.Second
	defaultMaxPolls     = 120
	defaultPollRate     = rate.Limit(1) // status requests per second, cluster-wide courtesy cap
)

// ErrBuildFailed is returned when the Studio reports a finished but
// unsuccessful build job.
var ErrBuildFailed = errors.New("model build failed on the server")

// ErrBuildTimeout is returned when a build job does not finish within the
// polling budget.
var ErrBuildTimeout = errors.New("model build did not finish in time")

// APIError reports a non-success response from the Studio API.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("studio api %s failed: http %d: %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("studio api %s failed: http %d", e.Operation, e.StatusCode)
}

// Client drives the Studio build-and-download pipeline: trigger an
// on-device deployment build, poll the job until it finishes, then download
// the resulting archive.
type Client struct {
	cfg          Config
	httpClient   *http.Client
	logger       *impulsego.Logger
	limiter      *rate.Limiter
	pollInterval time.Duration
	maxPolls     uint64
	group        singleflight.Group
}

type clientOptions struct {
	httpClient   *http.Client
	logger       *impulsego.Logger
	limiter      *rate.Limiter
	pollInterval time.Duration
	maxPolls     uint64
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

// WithHTTPClient sets the HTTP client used for all Studio API calls.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(o *clientOptions) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *impulsego.Logger) ClientOption {
	return func(o *clientOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPollInterval sets the delay between job status polls.
func WithPollInterval(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// WithMaxPolls caps the number of job status polls before giving up.
func WithMaxPolls(n uint64) ClientOption {
	return func(o *clientOptions) {
		if n > 0 {
			o.maxPolls = n
		}
	}
}

// WithRateLimiter sets the limiter applied to job status polls.
func WithRateLimiter(l *rate.Limiter) ClientOption {
	return func(o *clientOptions) {
		if l != nil {
			o.limiter = l
		}
	}
}

// NewClient creates a Studio API client for cfg.
func NewClient(cfg Config, optFns ...ClientOption) (*Client, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := clientOptions{
		httpClient:   http.DefaultClient,
		logger:       impulsego.NoopLogger(),
		limiter:      rate.NewLimiter(defaultPollRate, 1),
		pollInterval: defaultPollInterval,
		maxPolls:     defaultMaxPolls,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	return &Client{
		cfg:          cfg,
		httpClient:   opts.httpClient,
		logger:       opts.logger,
		limiter:      opts.limiter,
		pollInterval: opts.pollInterval,
		maxPolls:     opts.maxPolls,
	}, nil
}

type projectResponse struct {
	Success          bool   `json:"success"`
	Error            string `json:"error"`
	DefaultImpulseID *int   `json:"defaultImpulseId"`
}

type buildJobResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	ID      int    `json:"id"`
}

type jobStatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Job     struct {
		Category           string `json:"category"`
		Finished           *int64 `json:"finished"`
		FinishedSuccessful *bool  `json:"finishedSuccessful"`
	} `json:"job"`
}

// DefaultImpulseID looks up the project's default impulse.
func (c *Client) DefaultImpulseID(ctx context.Context) (int, error) {
	var resp projectResponse
	url := fmt.Sprintf("%s/%s", c.cfg.baseURL(), c.cfg.ProjectID)
	if err := c.getJSON(ctx, "project info", url, &resp); err != nil {
		return 0, err
	}
	if !resp.Success {
		return 0, &APIError{Operation: "project info", StatusCode: http.StatusOK, Message: resp.Error}
	}
	if resp.DefaultImpulseID == nil {
		return 0, errors.New("project has no default impulse")
	}
	return *resp.DefaultImpulseID, nil
}

// StartBuild triggers an on-device deployment build job for the impulse and
// returns the job ID.
func (c *Client) StartBuild(ctx context.Context, impulseID int) (int, error) {
	url := fmt.Sprintf("%s/%s/jobs/build-ondevice-model?type=zip&impulse=%d",
		c.cfg.baseURL(), c.cfg.ProjectID, impulseID)

	body, err := json.Marshal(map[string]string{"engine": c.cfg.Engine})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	var resp buildJobResponse
	if err := c.doJSON(req, "build job", &resp); err != nil {
		return 0, err
	}
	if !resp.Success {
		return 0, &APIError{Operation: "build job", StatusCode: http.StatusOK, Message: resp.Error}
	}
	return resp.ID, nil
}

// WaitForBuild polls the job until it finishes, fails, or the polling
// budget runs out. Polls run under the client's rate limiter.
func (c *Client) WaitForBuild(ctx context.Context, jobID int) error {
	url := fmt.Sprintf("%s/%s/jobs/%d/status", c.cfg.baseURL(), c.cfg.ProjectID, jobID)

	b := retry.NewConstant(c.pollInterval)
	err := retry.Do(ctx, retry.WithMaxRetries(c.maxPolls, b), func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		var resp jobStatusResponse
		if err := c.getJSON(ctx, "job status", url, &resp); err != nil {
			return err
		}
		if !resp.Success {
			return &APIError{Operation: "job status", StatusCode: http.StatusOK, Message: resp.Error}
		}

		job := resp.Job
		c.logger.DebugContext(ctx, "build status",
			"job_id", jobID,
			"category", job.Category,
		)

		if job.Finished == nil || job.FinishedSuccessful == nil {
			return retry.RetryableError(ErrBuildTimeout)
		}
		if !*job.FinishedSuccessful {
			return ErrBuildFailed
		}
		return nil
	})
	return err
}

// Download retrieves the built deployment archive for the impulse.
func (c *Client) Download(ctx context.Context, impulseID int) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/deployment/download?type=zip&impulse=%d",
		c.cfg.baseURL(), c.cfg.ProjectID, impulseID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Operation: "download", StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// FetchZip runs the full build-wait-download pipeline and returns the
// deployment archive. Concurrent calls for the same project are
// deduplicated: they share one pipeline run and its result.
func (c *Client) FetchZip(ctx context.Context) ([]byte, error) {
	v, err, _ := c.group.Do(c.cfg.ProjectID, func() (any, error) {
		return c.fetchZip(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Client) fetchZip(ctx context.Context) ([]byte, error) {
	fetchID := uuid.NewString()
	logger := &impulsego.Logger{Logger: c.logger.With("fetch_id", fetchID, "project_id", c.cfg.ProjectID)}

	impulseID, err := c.DefaultImpulseID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve default impulse: %w", err)
	}
	logger.DebugContext(ctx, "resolved default impulse", "impulse_id", impulseID)

	jobID, err := c.StartBuild(ctx, impulseID)
	if err != nil {
		return nil, fmt.Errorf("start build: %w", err)
	}
	logger.InfoContext(ctx, "build job started", "job_id", jobID, "engine", c.cfg.Engine)

	if err := c.WaitForBuild(ctx, jobID); err != nil {
		return nil, fmt.Errorf("wait for build: %w", err)
	}

	data, err := c.Download(ctx, impulseID)
	if err != nil {
		return nil, fmt.Errorf("download deployment: %w", err)
	}
	logger.InfoContext(ctx, "deployment downloaded", "bytes", len(data))

	return data, nil
}

// Fetch runs the pipeline, extracts the archive into dir and parses the
// bundled model metadata header. See FetchZip for deduplication semantics.
func (c *Client) Fetch(ctx context.Context, dir string) (*Bundle, error) {
	data, err := c.FetchZip(ctx)
	if err != nil {
		return nil, err
	}
	return OpenBundle(data, dir)
}

func (c *Client) getJSON(ctx context.Context, op, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	return c.doJSON(req, op, out)
}

func (c *Client) doJSON(req *http.Request, op string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Operation: op, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

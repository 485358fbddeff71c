package deployment

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	envProjectID  = "EI_PROJECT_ID"
	envAPIKey     = "EI_API_KEY"
	envStudioHost = "EDGE_IMPULSE_STUDIO_HOST"
	envEngine     = "EI_ENGINE"
)

const (
	// DefaultStudioHost is the public Edge Impulse Studio endpoint.
	DefaultStudioHost = "https://studio.edgeimpulse.com"

	// DefaultEngine is the deployment engine variant requested when none is
	// configured.
	DefaultEngine = "tflite-eon"
)

// ErrMissingCredentials is returned when the project ID or API key is not
// configured.
var ErrMissingCredentials = errors.New("project ID and API key are required")

// Config holds the Studio API connection settings.
type Config struct {
	// ProjectID is the Studio project to build and download from.
	ProjectID string

	// APIKey authenticates against the Studio API.
	APIKey string

	// StudioHost overrides the Studio endpoint. Defaults to
	// DefaultStudioHost.
	StudioHost string

	// Engine selects the deployment engine variant. Defaults to
	// DefaultEngine.
	Engine string
}

// ConfigFromEnv builds a Config from the EI_PROJECT_ID, EI_API_KEY,
// EDGE_IMPULSE_STUDIO_HOST and EI_ENGINE environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		ProjectID:  strings.TrimSpace(os.Getenv(envProjectID)),
		APIKey:     strings.TrimSpace(os.Getenv(envAPIKey)),
		StudioHost: strings.TrimSpace(os.Getenv(envStudioHost)),
		Engine:     strings.TrimSpace(os.Getenv(envEngine)),
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.StudioHost == "" {
		c.StudioHost = DefaultStudioHost
	}
	if c.Engine == "" {
		c.Engine = DefaultEngine
	}
}

func (c Config) validate() error {
	if c.ProjectID == "" || c.APIKey == "" {
		return fmt.Errorf("%w: set %s and %s", ErrMissingCredentials, envProjectID, envAPIKey)
	}
	return nil
}

func (c Config) baseURL() string {
	return strings.TrimSuffix(c.StudioHost, "/") + "/v1/api"
}

package config

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/opensearch-project/opensearch-go/v2"
)

type OpenSearchConfig struct {
	Host        string `env:"OPENSEARCH_HOST" envDefault:"localhost"`
	Port        string `env:"OPENSEARCH_PORT" envDefault:"9200"`
	Username    string `env:"OPENSEARCH_USERNAME"`
	Password    string `env:"OPENSEARCH_PASSWORD"`
	IndexPrefix string `env:"OPENSEARCH_INDEX_PREFIX" envDefault:"security_events"`
}

func LoadOpenSearchConfig() (*OpenSearchConfig, error) {
	cfg := &OpenSearchConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse opensearch config: %w", err)
	}
	return cfg, nil
}

func (c *OpenSearchConfig) GetClient() (*opensearch.Client, error) {
	config := opensearch.Config{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		},
		Addresses: []string{
			fmt.Sprintf("http://%s:%s", c.Host, c.Port),
		},
	}

	if c.Username != "" && c.Password != "" {
		config.Username = c.Username
		config.Password = c.Password
	}

	return opensearch.NewClient(config)
}

// GetIndexName returns the monthly index for events occurring at t.
// Format: <prefix>_YYYY_MM
func (c *OpenSearchConfig) GetIndexName(t time.Time) string {
	return fmt.Sprintf("%s_%s", c.IndexPrefix, t.UTC().Format("2006_01"))
}

// GetIndexPattern returns a pattern matching every security event index.
func (c *OpenSearchConfig) GetIndexPattern() string {
	return c.IndexPrefix + "_*"
}

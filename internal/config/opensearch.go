package config

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
)

type OpenSearchConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

func DefaultOpenSearchConfig() *OpenSearchConfig {
	return &OpenSearchConfig{
		Host:     getEnvWithDefault("OPENSEARCH_HOST", "localhost"),
		Port:     getEnvWithDefault("OPENSEARCH_PORT", "9200"),
		Username: getEnvWithDefault("OPENSEARCH_USERNAME", ""),
		Password: getEnvWithDefault("OPENSEARCH_PASSWORD", ""),
	}
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

// GetIndexName returns the index name for a given tenant and time.
// Format: audit_trail_<tenant_id>_YYYY_MM_DD
func (c *OpenSearchConfig) GetIndexName(tenantID string, t time.Time) string {
	return fmt.Sprintf("audit_trail_%s_%s", tenantID, t.Format("2006_01_02"))
}

// GetIndexPattern returns a pattern matching all indices for a tenant.
func (c *OpenSearchConfig) GetIndexPattern(tenantID string) string {
	return fmt.Sprintf("audit_trail_%s_*", tenantID)
}

package domain

import "time"

// Metadata is an opaque key-value blob persisted as JSON alongside an entity.
type Metadata map[string]any

// DatasourceConfig is the opaque, adapter-specific connection configuration
// carried by an integration and passed to adapters on every call.
type DatasourceConfig map[string]string

// Integration is a configured connection to one external datasource.
// The Type tag selects the adapter; Configuration is interpreted only by it.
type Integration struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Name          string           `json:"name"`
	Type          string           `json:"type"`
	Strategy      string           `json:"strategy"`
	Configuration DatasourceConfig `json:"configuration"`
	Metadata      Metadata         `json:"metadata,omitempty"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Auth strategies an integration type may support.
const (
	StrategyAPIKey = "api_key"
	StrategyOAuth  = "oauth"
)

// CreateIntegrationRequest holds input for creating an integration.
type CreateIntegrationRequest struct {
	UserID        string
	Name          string
	Type          string
	Strategy      string
	Configuration DatasourceConfig
	Metadata      Metadata
}

// UpdateIntegrationRequest holds optional fields for updating an integration.
// Nil fields are left unchanged.
type UpdateIntegrationRequest struct {
	Name          *string
	Configuration DatasourceConfig
	Metadata      Metadata
	IsActive      *bool
}

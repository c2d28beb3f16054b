package service

import (
	"sort"

	"schemacat/internal/domain"
)

// IntegrationDefinition declares what an integration type requires so that
// configuration can be validated before an adapter ever sees it.
type IntegrationDefinition struct {
	Type           string   `json:"type"`
	Label          string   `json:"label"`
	Strategies     []string `json:"strategies"`
	RequiredConfig []string `json:"requiredConfig"`
	OptionalConfig []string `json:"optionalConfig,omitempty"`
}

var integrationDefinitions = map[string]IntegrationDefinition{
	"splunk": {
		Type:           "splunk",
		Label:          "Splunk Enterprise / Cloud",
		Strategies:     []string{domain.StrategyAPIKey},
		RequiredConfig: []string{"host", "api-key"},
		OptionalConfig: []string{"management-port", "insecure-skip-tls-verify"},
	},
}

// DefinitionFor returns the definition for an integration type.
func DefinitionFor(integrationType string) (IntegrationDefinition, error) {
	def, ok := integrationDefinitions[integrationType]
	if !ok {
		return IntegrationDefinition{}, domain.ErrValidation("unknown integration type: %q", integrationType)
	}
	return def, nil
}

// Definitions returns all known integration definitions, sorted by type.
func Definitions() []IntegrationDefinition {
	defs := make([]IntegrationDefinition, 0, len(integrationDefinitions))
	for _, d := range integrationDefinitions {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Type < defs[j].Type })
	return defs
}

// ValidateConfig checks a configuration against a definition: every required
// key must be present and non-empty.
func (d IntegrationDefinition) ValidateConfig(cfg domain.DatasourceConfig) error {
	for _, key := range d.RequiredConfig {
		if cfg[key] == "" {
			return domain.ErrValidation("integration type %q requires configuration key %q", d.Type, key)
		}
	}
	return nil
}

// SupportsStrategy reports whether the definition accepts an auth strategy.
func (d IntegrationDefinition) SupportsStrategy(strategy string) bool {
	for _, s := range d.Strategies {
		if s == strategy {
			return true
		}
	}
	return false
}

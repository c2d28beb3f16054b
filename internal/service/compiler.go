package service

import (
	"context"
	"log/slog"

	"schemacat/internal/adapter"
	"schemacat/internal/domain"
)

// Compiler fans one logical query AST out into native query strings, one per
// collection mapped to the AST's schema.
//
// A schema with no mappings is a hard error: there is nothing to run the
// query against. A mapping whose integration type has no registered adapter
// is logged and skipped so one stale mapping cannot block the rest.
type Compiler struct {
	schemas  domain.LogicalSchemaRepository
	mappings domain.MappingRepository
	registry *adapter.Registry
	logger   *slog.Logger
}

// NewCompiler creates a new Compiler.
func NewCompiler(
	schemas domain.LogicalSchemaRepository,
	mappings domain.MappingRepository,
	registry *adapter.Registry,
	logger *slog.Logger,
) *Compiler {
	return &Compiler{schemas: schemas, mappings: mappings, registry: registry, logger: logger}
}

// Compile translates the AST for every mapped collection of its schema.
// TotalCollections is the number of translated queries returned; a mapping
// skipped for a missing adapter does not count.
func (c *Compiler) Compile(ctx context.Context, ast *domain.QueryAST) (*domain.FanOutResult, error) {
	if ast == nil {
		return nil, domain.ErrValidation("query AST is required")
	}
	if ast.LogicalSchemaID == "" {
		return nil, domain.ErrValidation("query AST must reference a logical schema")
	}
	if _, err := c.schemas.GetByID(ctx, ast.LogicalSchemaID); err != nil {
		return nil, err
	}

	mappings, err := c.mappings.ListBySchema(ctx, ast.LogicalSchemaID)
	if err != nil {
		return nil, err
	}
	if len(mappings) == 0 {
		return nil, domain.ErrValidation("no collections are mapped to schema %s", ast.LogicalSchemaID)
	}

	result := &domain.FanOutResult{}
	for i := range mappings {
		m := &mappings[i]

		a, err := c.registry.Lookup(m.Collection.Integration.Type)
		if err != nil {
			c.logger.Warn("skipping mapping with no adapter",
				"mapping_id", m.ID,
				"collection", m.Collection.Name,
				"integration_type", m.Collection.Integration.Type)
			continue
		}

		table := m.FieldNameTable()
		result.Queries = append(result.Queries, domain.TranslatedQuery{
			CollectionID:    m.CollectionID,
			CollectionName:  m.Collection.Name,
			IntegrationType: m.Collection.Integration.Type,
			Query:           a.ConvertQueryAST(ast, table),
			FieldMappings:   table,
		})
	}
	result.TotalCollections = len(result.Queries)
	return result, nil
}

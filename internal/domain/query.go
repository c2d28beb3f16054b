package domain

// Comparison operators supported by the query AST.
const (
	OpEquals      = "eq"
	OpContains    = "contains"
	OpGreaterThan = "gt"
	OpLessThan    = "lt"
)

// Logical operators for combining filter conditions.
const (
	OpAnd = "and"
	OpOr  = "or"
)

// Filter node kinds.
const (
	FilterComparison = "comparison"
	FilterLogical    = "logical"
)

// Filter is one node of a query filter tree: either a comparison of a field
// against a literal, or a logical combination of child conditions. The tree
// is immutable once built.
type Filter struct {
	Type string `json:"type"`

	// Comparison fields.
	Field    string `json:"field,omitempty"`
	Operator string `json:"operator"`
	Value    any    `json:"value,omitempty"`

	// Logical fields.
	Conditions []*Filter `json:"conditions,omitempty"`
}

// QueryAST is a transient, vendor-neutral query expression bound to a
// logical schema. It is constructed per request and never persisted.
type QueryAST struct {
	LogicalSchemaID string   `json:"logicalSchemaId"`
	Select          []string `json:"select,omitempty"`
	Where           *Filter  `json:"where,omitempty"`
	Limit           int      `json:"limit,omitempty"`
}

// Filter constructors.

// Eq builds an equality comparison.
func Eq(field string, value any) *Filter {
	return &Filter{Type: FilterComparison, Field: field, Operator: OpEquals, Value: value}
}

// Contains builds a substring-match comparison.
func Contains(field string, value string) *Filter {
	return &Filter{Type: FilterComparison, Field: field, Operator: OpContains, Value: value}
}

// Gt builds a greater-than comparison.
func Gt(field string, value any) *Filter {
	return &Filter{Type: FilterComparison, Field: field, Operator: OpGreaterThan, Value: value}
}

// Lt builds a less-than comparison.
func Lt(field string, value any) *Filter {
	return &Filter{Type: FilterComparison, Field: field, Operator: OpLessThan, Value: value}
}

// And combines conditions so that all must hold.
func And(conditions ...*Filter) *Filter {
	return &Filter{Type: FilterLogical, Operator: OpAnd, Conditions: conditions}
}

// Or combines conditions so that at least one must hold.
func Or(conditions ...*Filter) *Filter {
	return &Filter{Type: FilterLogical, Operator: OpOr, Conditions: conditions}
}

// TranslatedQuery is one native query rendered for one mapped collection.
type TranslatedQuery struct {
	CollectionID    string            `json:"collectionId"`
	CollectionName  string            `json:"collectionName"`
	IntegrationType string            `json:"integrationType"`
	Query           string            `json:"query"`
	FieldMappings   map[string]string `json:"fieldMappings"`
}

// FanOutResult is the full set of native queries produced from one AST,
// one per mapped collection that could be translated.
type FanOutResult struct {
	Queries          []TranslatedQuery `json:"queries"`
	TotalCollections int               `json:"totalCollections"`
}

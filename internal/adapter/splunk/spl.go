package splunk

import (
	"fmt"
	"strings"

	"schemacat/internal/domain"
)

// ConvertQueryAST renders a query AST as an SPL search string.
//
// Translation is total by design: an unmapped logical field is used
// verbatim as the physical field name, and an unknown operator renders as
// equality. A partially-mapped query is still useful for manual inspection,
// so there is no error path here at all.
func (s *Splunk) ConvertQueryAST(ast *domain.QueryAST, fieldMappings map[string]string) string {
	mapField := func(logical string) string {
		if physical, ok := fieldMappings[logical]; ok && physical != "" {
			return physical
		}
		return logical
	}

	var convertFilter func(f *domain.Filter) string
	convertFilter = func(f *domain.Filter) string {
		if f.Type == domain.FilterComparison {
			field := mapField(f.Field)
			switch f.Operator {
			case domain.OpEquals:
				// %q escapes quotes and backslashes so a value cannot
				// terminate the quoted literal early.
				return fmt.Sprintf("%s=%q", field, fmt.Sprintf("%v", f.Value))
			case domain.OpContains:
				return fmt.Sprintf("%s=*%v*", field, f.Value)
			case domain.OpGreaterThan:
				return fmt.Sprintf("%s>%v", field, f.Value)
			case domain.OpLessThan:
				return fmt.Sprintf("%s<%v", field, f.Value)
			default:
				return fmt.Sprintf("%s=%q", field, fmt.Sprintf("%v", f.Value))
			}
		}

		conditions := make([]string, 0, len(f.Conditions))
		for _, c := range f.Conditions {
			conditions = append(conditions, convertFilter(c))
		}
		// AND renders bare; OR gets one pair of grouping parentheses. The
		// asymmetry matches the SPL implicit-AND convention.
		switch f.Operator {
		case domain.OpOr:
			return "(" + strings.Join(conditions, " OR ") + ")"
		default:
			return strings.Join(conditions, " AND ")
		}
	}

	var spl strings.Builder
	spl.WriteString("search")

	if ast.Where != nil {
		spl.WriteString(" ")
		spl.WriteString(convertFilter(ast.Where))
	}

	if len(ast.Select) > 0 {
		physical := make([]string, len(ast.Select))
		for i, logical := range ast.Select {
			physical[i] = mapField(logical)
		}
		spl.WriteString(" | table ")
		spl.WriteString(strings.Join(physical, ", "))
	}

	if ast.Limit > 0 {
		fmt.Fprintf(&spl, " | head %d", ast.Limit)
	}

	return spl.String()
}

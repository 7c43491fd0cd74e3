package dialect

import (
	"fmt"

	"catalog-gateway/internal/model"
)

// BindParams carries the caller-controlled identifiers for one rendering.
// An empty Schema means "no schema filter".
type BindParams struct {
	Schema string
	Table  string
}

// Bind renders a template without a pagination window (counts, existence
// probes). Every caller-controlled value is passed as a bound parameter;
// identifiers are validated against the allow-list before any rendering.
func Bind(ts *TemplateSet, kind QueryKind, p BindParams) (*RenderedQuery, error) {
	tmpl, err := ts.Template(kind)
	if err != nil {
		return nil, err
	}
	return render(ts, tmpl, p)
}

// BindWindow renders a list template scoped to a (offset, limit) window.
// For dialects whose source cannot take a pagination clause, the returned
// query carries the window for client-side application instead.
func BindWindow(ts *TemplateSet, kind QueryKind, p BindParams, offset, limit int) (*RenderedQuery, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: offset=%d limit=%d", ErrInvalidPagination, offset, limit)
	}

	tmpl, err := ts.Template(kind)
	if err != nil {
		return nil, err
	}

	rendered, err := render(ts, tmpl, p)
	if err != nil {
		return nil, err
	}

	if tmpl.InMemory {
		rendered.Window = &model.PageWindow{Offset: offset, Limit: limit}
		return rendered, nil
	}

	next := len(tmpl.Params) + 1
	switch ts.Strategy {
	case OffsetFetchNext:
		rendered.SQL += fmt.Sprintf(" OFFSET %s ROWS FETCH NEXT %s ROWS ONLY",
			ts.Placeholder(next), ts.Placeholder(next+1))
		rendered.Args = append(rendered.Args, offset, limit)
	default:
		rendered.SQL += fmt.Sprintf(" LIMIT %s OFFSET %s",
			ts.Placeholder(next), ts.Placeholder(next+1))
		rendered.Args = append(rendered.Args, limit, offset)
	}

	return rendered, nil
}

func render(ts *TemplateSet, tmpl *Template, p BindParams) (*RenderedQuery, error) {
	if tmpl.InlineTable || needsParam(tmpl, "table") {
		if err := ValidateIdentifier(p.Table); err != nil {
			return nil, err
		}
	}

	schema := p.Schema
	if !ts.SupportsSchemaFilter {
		schema = ""
	}
	if schema != "" {
		if err := ValidateIdentifier(schema); err != nil {
			return nil, err
		}
	}

	sqlText := tmpl.SQL
	if tmpl.InlineTable {
		// Pragmas reject bound parameters; the identifier was validated
		// against the strict allow-list above.
		sqlText = fmt.Sprintf(tmpl.SQL, p.Table)
	}

	args := make([]any, 0, len(tmpl.Params))
	for _, param := range tmpl.Params {
		switch param.Name {
		case "schema":
			if schema == "" {
				if !param.Optional {
					return nil, fmt.Errorf("template %s requires a schema", tmpl.Kind)
				}
				args = append(args, nil)
			} else {
				args = append(args, schema)
			}
		case "table":
			args = append(args, p.Table)
		default:
			return nil, fmt.Errorf("template %s declares unknown parameter %q", tmpl.Kind, param.Name)
		}
	}

	return &RenderedQuery{SQL: sqlText, Args: args}, nil
}

func needsParam(tmpl *Template, name string) bool {
	for _, p := range tmpl.Params {
		if p.Name == name {
			return true
		}
	}
	return false
}

package handlers

import (
	"context"
	"fmt"

	"github.com/jonwraymond/tooldiscovery/tooldoc"

	"github.com/jonwraymond/scenebridge/tools"
)

const defaultSearchLimit = 10

// Catalog returns the provider for the tool-catalog query tools. The
// registry is looked up lazily so the provider can be registered into the
// registry it queries.
func Catalog(registry func() *tools.Registry) tools.Provider {
	return func() ([]tools.ToolDef, error) {
		return []tools.ToolDef{
			searchToolsDef(registry),
			describeToolDef(registry),
		}, nil
	}
}

func searchToolsDef(registry func() *tools.Registry) tools.ToolDef {
	return tools.ToolDef{
		Name:        "search_tools",
		Title:       title("search_tools"),
		Description: "Searches the published tool catalog.",
		InputSchema: objectSchema(map[string]any{
			"query": map[string]any{"type": "string"},
			"limit": map[string]any{"type": "number"},
		}, "query"),
		Tags: []string{"catalog", "search"},
		Doc: tooldoc.DocEntry{
			Summary: "Full-text search over registered tool names and descriptions.",
		},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			if query == "" {
				return nil, fmt.Errorf("search_tools: query is required")
			}
			limit := defaultSearchLimit
			if n, ok := args["limit"].(float64); ok && n > 0 {
				limit = int(n)
			}
			results, err := registry().Search(query, limit)
			if err != nil {
				return nil, fmt.Errorf("search_tools: %w", err)
			}
			names := make([]any, 0, len(results))
			for _, r := range results {
				names = append(names, r.ID)
			}
			return map[string]any{"matches": names}, nil
		},
	}
}

func describeToolDef(registry func() *tools.Registry) tools.ToolDef {
	return tools.ToolDef{
		Name:        "describe_tool",
		Title:       title("describe_tool"),
		Description: "Returns catalog documentation for one tool.",
		InputSchema: objectSchema(map[string]any{
			"name": map[string]any{"type": "string"},
		}, "name"),
		Tags: []string{"catalog", "docs"},
		Doc: tooldoc.DocEntry{
			Summary: "Returns the registered summary and notes for one tool.",
		},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			name, _ := args["name"].(string)
			if name == "" {
				return nil, fmt.Errorf("describe_tool: name is required")
			}
			doc, err := registry().Describe(name, tooldoc.DetailFull)
			if err != nil {
				return nil, fmt.Errorf("describe_tool: %w", err)
			}
			return map[string]any{
				"name":    name,
				"summary": doc.Summary,
				"notes":   doc.Notes,
			}, nil
		},
	}
}

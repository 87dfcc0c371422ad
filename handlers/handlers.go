package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonwraymond/scenebridge/convert"
	"github.com/jonwraymond/scenebridge/sandbox"
	"github.com/jonwraymond/scenebridge/scene"
	"github.com/jonwraymond/scenebridge/task"
	"github.com/jonwraymond/scenebridge/tools"
)

// Errors returned when a capability the handlers need is not wired.
var (
	ErrSandboxRequired  = errors.New("handlers: Sandbox is required")
	ErrResolverRequired = errors.New("handlers: Resolve is required")
)

// Inserter is the capability behind the insert-by-query tool: it searches
// the external asset catalog and inserts the top match into the graph,
// returning the inserted node's path.
type Inserter interface {
	Insert(ctx context.Context, query string) (string, error)
}

// Options wires the host capabilities into the scene tool handlers.
type Options struct {
	// Sandbox runs submitted script source.
	// Required.
	Sandbox *sandbox.Executor

	// Resolve finds live nodes by path.
	// Required.
	Resolve scene.Resolver

	// Insert backs the insert_model tool.
	// Optional; the tool reports an error when unset.
	Insert Inserter
}

var titler = cases.Title(language.Und)

// title derives a human tool title from its snake_case name.
func title(name string) string {
	return titler.String(strings.ReplaceAll(name, "_", " "))
}

// Scene returns the provider for the built-in scene tools.
func Scene(opts Options) tools.Provider {
	return func() ([]tools.ToolDef, error) {
		if opts.Sandbox == nil {
			return nil, ErrSandboxRequired
		}
		if opts.Resolve == nil {
			return nil, ErrResolverRequired
		}
		return []tools.ToolDef{
			runCommandDef(opts.Sandbox),
			insertModelDef(opts.Insert),
			getPropertyDef(opts.Resolve),
			setPropertyDef(opts.Resolve),
			callMethodDef(opts.Resolve),
		}, nil
	}
}

func runCommandDef(sb *sandbox.Executor) tools.ToolDef {
	name := task.RunCommandTool
	return tools.ToolDef{
		Name:        name,
		Title:       title(name),
		Description: "Runs a raw script source string in the host and returns its output and return values.",
		InputSchema: objectSchema(map[string]any{
			"command": map[string]any{"type": "string", "description": "The script source to execute."},
		}, "command"),
		Tags: []string{"script", "execute"},
		Doc: tooldoc.DocEntry{
			Summary: "Executes script source in a sandboxed interpreter.",
			Notes:   "Print output is captured line by line; chunk return values come back alongside it. The os, io, and debug libraries are unavailable.",
			Examples: []tooldoc.ToolExample{
				{Title: "Evaluate an expression", Args: map[string]any{"command": "return 2 + 2"}},
			},
		},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			command, _ := args["command"].(string)
			if strings.TrimSpace(command) == "" {
				return nil, fmt.Errorf("run_command: command must be a non-empty string")
			}

			res := sb.Run(command)
			switch res.Status {
			case sandbox.StatusLoadFailed:
				return nil, res.Err
			case sandbox.StatusRuntimeFailed:
				// Output already carries the tagged runtime error after
				// everything printed before the failure.
				return nil, errors.New(res.Output)
			}

			if res.Output == "" && len(res.ReturnValues) == 0 {
				return map[string]any{"message": "command completed with no output"}, nil
			}
			out := map[string]any{"output": res.Output}
			if len(res.ReturnValues) > 0 {
				out["values"] = res.ReturnValues
			}
			return out, nil
		},
	}
}

func insertModelDef(ins Inserter) tools.ToolDef {
	name := task.InsertModelTool
	return tools.ToolDef{
		Name:        name,
		Title:       title(name),
		Description: "Searches the external asset catalog and inserts the top result into the graph.",
		InputSchema: objectSchema(map[string]any{
			"query": map[string]any{"type": "string", "description": "Search term for the asset."},
		}, "query"),
		Tags: []string{"asset", "insert"},
		Doc: tooldoc.DocEntry{
			Summary: "Inserts the top catalog match for a free-text query.",
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			if strings.TrimSpace(query) == "" {
				return nil, fmt.Errorf("insert_model: query must be a non-empty string")
			}
			if ins == nil {
				return nil, fmt.Errorf("insert_model: no asset inserter configured")
			}
			path, err := ins.Insert(ctx, query)
			if err != nil {
				return nil, fmt.Errorf("insert_model: %w", err)
			}
			return map[string]any{"message": "Inserted model at " + path}, nil
		},
	}
}

func getPropertyDef(resolve scene.Resolver) tools.ToolDef {
	return tools.ToolDef{
		Name:        "get_property",
		Title:       title("get_property"),
		Description: "Reads one property of a live node by path.",
		InputSchema: objectSchema(map[string]any{
			"path":     map[string]any{"type": "string"},
			"property": map[string]any{"type": "string"},
		}, "path", "property"),
		Tags: []string{"graph", "property"},
		Doc: tooldoc.DocEntry{
			Summary: "Reads one property from the node at a path.",
		},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			node, prop, err := resolveTarget(resolve, args)
			if err != nil {
				return nil, err
			}
			value, err := node.Get(prop)
			if err != nil {
				return nil, fmt.Errorf("get_property: %w", err)
			}
			return map[string]any{
				"property": prop,
				"value":    fmt.Sprintf("%v", value),
			}, nil
		},
	}
}

func setPropertyDef(resolve scene.Resolver) tools.ToolDef {
	return tools.ToolDef{
		Name:        "set_property",
		Title:       title("set_property"),
		Description: "Writes one property of a live node by path, marshalling composite values to their native types.",
		InputSchema: objectSchema(map[string]any{
			"path":     map[string]any{"type": "string"},
			"property": map[string]any{"type": "string"},
			"value":    map[string]any{"description": "The value to assign; composites are converted by field name."},
		}, "path", "property", "value"),
		Tags: []string{"graph", "property"},
		Doc: tooldoc.DocEntry{
			Summary: "Writes one property on the node at a path.",
			Notes:   "Composite values are converted to native types by field name. Conversion either fully applies or fails naming the offending sub-fields.",
			Examples: []tooldoc.ToolExample{
				{Title: "Paint a part red", Args: map[string]any{
					"path":     "Workspace.Part",
					"property": "Color",
					"value":    map[string]any{"r": 1, "g": 0, "b": 0},
				}},
			},
		},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			node, prop, err := resolveTarget(resolve, args)
			if err != nil {
				return nil, err
			}
			value, err := convert.Convert(prop, args["value"], node)
			if err != nil {
				return nil, fmt.Errorf("set_property: %w", err)
			}
			if err := node.Set(prop, value); err != nil {
				return nil, fmt.Errorf("set_property: %w", err)
			}
			return map[string]any{"message": fmt.Sprintf("Set %s on %s", prop, args["path"])}, nil
		},
	}
}

func callMethodDef(resolve scene.Resolver) tools.ToolDef {
	return tools.ToolDef{
		Name:        "call_method",
		Title:       title("call_method"),
		Description: "Invokes a method on a live node by path.",
		InputSchema: objectSchema(map[string]any{
			"path":      map[string]any{"type": "string"},
			"method":    map[string]any{"type": "string"},
			"arguments": map[string]any{"type": "array"},
		}, "path", "method"),
		Tags: []string{"graph", "method"},
		Doc: tooldoc.DocEntry{
			Summary: "Invokes a method on the node at a path.",
		},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			path, _ := args["path"].(string)
			method, _ := args["method"].(string)
			if path == "" || method == "" {
				return nil, fmt.Errorf("call_method: path and method are required")
			}
			node, err := resolve(path)
			if err != nil {
				return nil, fmt.Errorf("call_method: %w", err)
			}
			var callArgs []any
			if list, ok := args["arguments"].([]any); ok {
				callArgs = list
			}
			value, err := node.Call(method, callArgs...)
			if err != nil {
				return nil, fmt.Errorf("call_method: %w", err)
			}
			return map[string]any{
				"method": method,
				"result": fmt.Sprintf("%v", value),
			}, nil
		},
	}
}

func resolveTarget(resolve scene.Resolver, args map[string]any) (scene.Node, string, error) {
	path, _ := args["path"].(string)
	prop, _ := args["property"].(string)
	if path == "" || prop == "" {
		return nil, "", fmt.Errorf("path and property are required")
	}
	node, err := resolve(path)
	if err != nil {
		return nil, "", err
	}
	return node, prop, nil
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	req := make([]any, 0, len(required))
	for _, r := range required {
		req = append(req, r)
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   req,
	}
}

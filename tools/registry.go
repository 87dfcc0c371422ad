package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonwraymond/scenebridge/encode"
	"github.com/jonwraymond/scenebridge/task"
)

// DefaultNamespace is the catalog namespace when Options leaves it unset.
const DefaultNamespace = "scene"

// Errors returned during registration.
var (
	ErrToolExists  = errors.New("tools: tool already registered")
	ErrNoHandler   = errors.New("tools: tool has no handler")
	ErrUnnamedTool = errors.New("tools: tool name is required")
)

// HandlerFunc is the signature every tool handler implements.
type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

// ToolDef declares one tool: its catalog metadata and its handler.
type ToolDef struct {
	Name        string
	Title       string
	Description string
	InputSchema map[string]any
	Annotations *mcp.ToolAnnotations
	Tags        []string
	Doc         tooldoc.DocEntry
	Handler     HandlerFunc
}

// Provider yields a group of tool definitions. A provider that fails is
// skipped with a warning at build time; the registry starts degraded rather
// than not at all.
type Provider func() ([]ToolDef, error)

// Options configures a Registry.
type Options struct {
	// Namespace prefixes catalog tool IDs ("scene:run_command").
	// Defaults to DefaultNamespace.
	Namespace string

	// Logger records skipped registrations and dispatch faults.
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

// Registry is the immutable name-to-handler map plus the searchable catalog.
// Build it once at startup and treat it as read-only afterwards.
type Registry struct {
	ns   string
	log  *zap.Logger
	defs map[string]ToolDef
	idx  index.Index
	// docs keeps the concrete store type: registration is not part of the
	// read-side tooldoc.Store interface.
	docs *tooldoc.InMemoryStore
}

// New builds a Registry from the given providers. A provider or tool that
// fails to register is logged and skipped.
func New(opts Options, providers ...Provider) *Registry {
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	idx := index.NewInMemoryIndex()
	r := &Registry{
		ns:   opts.Namespace,
		log:  opts.Logger,
		defs: make(map[string]ToolDef),
		idx:  idx,
		docs: tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: idx}),
	}

	for _, p := range providers {
		defs, err := p()
		if err != nil {
			r.log.Warn("skipping tool provider", zap.Error(err))
			continue
		}
		for _, def := range defs {
			if err := r.register(def); err != nil {
				r.log.Warn("skipping tool", zap.String("tool", def.Name), zap.Error(err))
			}
		}
	}
	return r
}

func (r *Registry) register(def ToolDef) error {
	if def.Name == "" {
		return ErrUnnamedTool
	}
	if def.Handler == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, def.Name)
	}
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolExists, def.Name)
	}

	tool := model.Tool{
		Tool: mcp.Tool{
			Name:        def.Name,
			Title:       def.Title,
			Description: def.Description,
			InputSchema: def.InputSchema,
			Annotations: def.Annotations,
		},
		Namespace: r.ns,
		Tags:      model.NormalizeTags(def.Tags),
	}
	if err := r.idx.RegisterTool(tool, model.NewLocalBackend(r.ns+"-"+def.Name)); err != nil {
		return fmt.Errorf("index registration: %w", err)
	}
	if err := r.docs.RegisterDoc(r.ns+":"+def.Name, def.Doc); err != nil {
		r.log.Warn("doc registration failed", zap.String("tool", def.Name), zap.Error(err))
	}

	r.defs[def.Name] = def
	return nil
}

// Len reports how many tools registered successfully.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.defs))
	for name := range r.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Catalog returns the published tool list, sorted by name.
func (r *Registry) Catalog() []model.Tool {
	out := make([]model.Tool, 0, len(r.defs))
	for _, name := range r.Names() {
		def := r.defs[name]
		out = append(out, model.Tool{
			Tool: mcp.Tool{
				Name:        def.Name,
				Title:       def.Title,
				Description: def.Description,
				InputSchema: def.InputSchema,
				Annotations: def.Annotations,
			},
			Namespace: r.ns,
			Tags:      model.NormalizeTags(def.Tags),
		})
	}
	return out
}

// Search queries the catalog index.
func (r *Registry) Search(query string, limit int) ([]index.Summary, error) {
	return r.idx.Search(query, limit)
}

// Describe returns catalog documentation for a registered tool name.
func (r *Registry) Describe(name string, level tooldoc.DetailLevel) (tooldoc.ToolDoc, error) {
	return r.docs.DescribeTool(r.ns+":"+name, level)
}

// Dispatch runs one decoded task through its handler and wraps the outcome
// in the uniform envelope. It never returns an error and never panics: every
// fault becomes an error envelope.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	// Decode-stage argument failures complete through the error path
	// without touching a handler.
	if msg, ok := args[task.ArgErrorKey].(string); ok {
		return encode.Error(msg)
	}

	def, ok := r.defs[name]
	if !ok {
		return encode.Error(fmt.Sprintf("Tool not found: %s", name))
	}

	value, err := r.invoke(ctx, def, args)
	if err != nil {
		r.log.Debug("tool failed", zap.String("tool", name), zap.Error(err))
		return encode.Error(err.Error())
	}
	return encode.Text(encode.Value(value), false)
}

// invoke calls the handler, converting a panic into an internal error.
func (r *Registry) invoke(ctx context.Context, def ToolDef, args map[string]any) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error in %s: %v", def.Name, rec)
		}
	}()
	return def.Handler(ctx, args)
}

package sandbox

import (
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Status classifies the outcome of one sandboxed run.
type Status int

// Run outcomes.
const (
	// StatusOK means the source loaded and ran to completion.
	StatusOK Status = iota
	// StatusLoadFailed means the source did not compile; nothing executed.
	StatusLoadFailed
	// StatusRuntimeFailed means the source raised after loading.
	StatusRuntimeFailed
)

// Result is the outcome of one Run call.
type Result struct {
	// Status classifies the run.
	Status Status

	// Output is the intercepted print output, one line per call,
	// newline-joined. On a runtime failure it ends with the tagged error.
	Output string

	// ReturnValues holds every value the chunk returned, in order.
	ReturnValues []any

	// Err is the load or runtime failure message. Nil when Status is
	// StatusOK.
	Err error
}

// Options configures an Executor.
type Options struct {
	// Sink receives a best-effort copy of intercepted print output, one
	// write per call. A failing or panicking sink never aborts the run.
	Sink io.Writer

	// Bind, when set, is called on each fresh interpreter state before the
	// chunk runs, letting the host expose its own API surface.
	Bind func(L *lua.LState)

	// Logger records run outcomes. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Executor runs script source in one-shot interpreter states.
type Executor struct {
	opts Options
}

// New creates an Executor.
func New(opts Options) *Executor {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Executor{opts: opts}
}

// Run loads and executes one chunk of source. It never panics; every failure
// is reported through the Result.
func (e *Executor) Run(source string) Result {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openLibraries(L)

	var out outputBuffer
	out.sink = e.opts.Sink
	L.SetGlobal("print", L.NewFunction(out.printIntercept))

	if e.opts.Bind != nil {
		e.opts.Bind(L)
	}

	fn, err := L.LoadString(source)
	if err != nil {
		e.opts.Logger.Debug("sandbox load failed", zap.Error(err))
		return Result{
			Status: StatusLoadFailed,
			Err:    fmt.Errorf("load failed: %s", loadMessage(err)),
		}
	}

	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		msg := runtimeMessage(err)
		out.appendLine("runtime error: " + msg)
		e.opts.Logger.Debug("sandbox runtime failed", zap.String("error", msg))
		return Result{
			Status: StatusRuntimeFailed,
			Output: out.String(),
			Err:    fmt.Errorf("runtime error: %s", msg),
		}
	}

	// Everything left on the stack is a return value of the chunk.
	n := L.GetTop()
	values := make([]any, 0, n)
	for i := 1; i <= n; i++ {
		values = append(values, toGo(L.Get(i)))
	}

	return Result{
		Status:       StatusOK,
		Output:       out.String(),
		ReturnValues: values,
	}
}

// openLibraries opens the safe subset of the standard libraries. The os, io,
// and debug libraries stay closed.
func openLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// outputBuffer accumulates intercepted print output.
type outputBuffer struct {
	lines []string
	sink  io.Writer
}

// printIntercept replaces the global print: arguments are stringified,
// tab-joined, and buffered. The original sink, when present, gets a copy but
// can never abort the run.
func (o *outputBuffer) printIntercept(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	o.appendLine(strings.Join(parts, "\t"))
	return 0
}

func (o *outputBuffer) appendLine(line string) {
	o.lines = append(o.lines, line)
	if o.sink != nil {
		func() {
			defer func() { _ = recover() }()
			_, _ = io.WriteString(o.sink, line+"\n")
		}()
	}
}

func (o *outputBuffer) String() string {
	return strings.Join(o.lines, "\n")
}

// loadMessage strips the interpreter's wrapper from a compile error.
func loadMessage(err error) string {
	if apiErr, ok := err.(*lua.ApiError); ok {
		return apiErr.Object.String()
	}
	return err.Error()
}

// runtimeMessage extracts the first failure's message, unwrapping a
// structured error object to its message field when present.
func runtimeMessage(err error) string {
	apiErr, ok := err.(*lua.ApiError)
	if !ok {
		return err.Error()
	}
	if tbl, ok := apiErr.Object.(*lua.LTable); ok {
		if msg := tbl.RawGetString("message"); msg != lua.LNil {
			return msg.String()
		}
	}
	return apiErr.Object.String()
}

// toGo converts an interpreter value to its Go representation. Sequential
// tables become slices, other tables become string-keyed maps.
func toGo(v lua.LValue) any {
	switch t := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(t)
	case lua.LNumber:
		return float64(t)
	case lua.LString:
		return string(t)
	case *lua.LTable:
		return tableToGo(t)
	default:
		return v.String()
	}
}

func tableToGo(t *lua.LTable) any {
	maxN := t.MaxN()
	if maxN > 0 {
		out := make([]any, 0, maxN)
		for i := 1; i <= maxN; i++ {
			out = append(out, toGo(t.RawGetInt(i)))
		}
		return out
	}
	out := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		out[k.String()] = toGo(v)
	})
	return out
}

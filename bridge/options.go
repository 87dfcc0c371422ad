package bridge

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonwraymond/scenebridge/tools"
)

// Default timing values. The poll interval paces empty polls, the retry
// backoff paces transport failures, and the request timeout must exceed the
// coordinator's long-poll hold time.
const (
	DefaultPollInterval   = 1 * time.Second
	DefaultRetryBackoff   = 2 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// Errors returned by Options validation.
var (
	ErrEndpointRequired = errors.New("bridge: Endpoint is required")
	ErrRegistryRequired = errors.New("bridge: Registry is required")
)

// Options configures a Bridge.
type Options struct {
	// Endpoint is the coordinator's long-poll URL.
	// Required.
	Endpoint string

	// Registry dispatches decoded tasks.
	// Required.
	Registry *tools.Registry

	// Client is the HTTP client for the poll exchange. A default client
	// with RequestTimeout is built when nil.
	Client *http.Client

	// Logger records transport and decode failures.
	// Defaults to a no-op logger.
	Logger *zap.Logger

	// Checkpoint, when set, brackets each dispatch with an opaque host
	// undo/redo checkpoint: it is called with a label before dispatch and
	// the returned func runs after.
	Checkpoint func(label string) func()

	// PollInterval is the idle sleep after an empty poll.
	// Default: 1s.
	PollInterval time.Duration

	// RetryBackoff is the fixed sleep after a transport failure.
	// Default: 2s.
	RetryBackoff time.Duration

	// RequestTimeout bounds one poll exchange.
	// Default: 30s.
	RequestTimeout time.Duration
}

// validate checks that required fields are set.
func (o *Options) validate() error {
	if o.Endpoint == "" {
		return ErrEndpointRequired
	}
	if o.Registry == nil {
		return ErrRegistryRequired
	}
	return nil
}

// applyDefaults sets default values for unset optional fields.
func (o *Options) applyDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.PollInterval == 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.RetryBackoff == 0 {
		o.RetryBackoff = DefaultRetryBackoff
	}
	if o.RequestTimeout == 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
	if o.Client == nil {
		o.Client = &http.Client{Timeout: o.RequestTimeout}
	}
}

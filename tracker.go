// Package woopra is a synchronous client for the Woopra tracking service.
//
// A visitor is identified once with Identify, then passed to TrackEvent,
// TrackIdentify or SearchProfile. Each call issues exactly one HTTP request
// and returns the raw response; nothing is parsed, retried or batched.
// Transport errors are returned as the Client produced them.
//
//	tracker := woopra.New("example.com", accessKey)
//	user, err := woopra.Identify(woopra.ByEmail, "[email protected]",
//		woopra.WithProperties(map[string]any{"name": "John"}))
//	if err != nil {
//		return err
//	}
//	resp, err := tracker.TrackEvent(user, "signup", map[string]any{"plan": "Gold"})
package woopra

import "runtime"

// Version is reported in the default client user agent.
const Version = "1.0.0"

type Tracker struct {
	builder *Builder
	client  Client
}

type Option func(*Tracker)

// WithClient replaces the HTTP transport.
func WithClient(client Client) Option {
	return func(t *Tracker) {
		t.client = client
	}
}

// WithBaseURL points the default transport at another origin.
func WithBaseURL(baseURL string) Option {
	return func(t *Tracker) {
		t.builder.config.BaseURL = baseURL
	}
}

func WithSDKID(id string) Option {
	return func(t *Tracker) {
		t.builder.config.SDKID = id
	}
}

func WithIdleTimeout(millis int64) Option {
	return func(t *Tracker) {
		t.builder.SetIdleTimeout(millis)
	}
}

func New(domain, accessKey string, opts ...Option) *Tracker {
	return NewFromConfig(NewConfig(domain, accessKey), opts...)
}

// NewFromConfig takes ownership of config; SetIdleTimeout mutates it.
func NewFromConfig(config *Config, opts ...Option) *Tracker {
	t := &Tracker{builder: NewBuilder(config)}
	for _, opt := range opts {
		opt(t)
	}

	if t.client == nil {
		if config.BaseURL == "" {
			config.BaseURL = DefaultBaseURL
		}
		agent := UserAgent("woopra-go", Version, runtime.GOOS, "?", runtime.GOARCH)
		t.client = NewHttpClient(config.BaseURL, agent, nil)
	}

	return t
}

func (t *Tracker) Builder() *Builder {
	return t.builder
}

// Identify is a shorthand for the package level Identify.
func (t *Tracker) Identify(kind IdentifierKind, value string, opts ...IdentityOption) (Identity, error) {
	return Identify(kind, value, opts...)
}

// TrackEvent records a pageview or custom event. data may be nil.
func (t *Tracker) TrackEvent(identity Identity, name string, data map[string]any) (*Response, error) {
	return t.client.Get(t.builder.EventRequest(identity, name, data))
}

// TrackIdentify pushes identification when no event is tracked.
func (t *Tracker) TrackIdentify(identity Identity) (*Response, error) {
	return t.client.Get(t.builder.IdentifyRequest(identity))
}

// SearchProfile retrieves the visitor profile for the identity's email.
func (t *Tracker) SearchProfile(identity Identity) (*Response, error) {
	return t.client.Post(t.builder.ProfileRequest(identity))
}

func (t *Tracker) SetIdleTimeout(millis int64) {
	t.builder.SetIdleTimeout(millis)
}

func (t *Tracker) ClearIdleTimeout() {
	t.builder.ClearIdleTimeout()
}

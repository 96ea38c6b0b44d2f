package woopra

import (
	"net/url"
	"strconv"
)

const (
	TrackEventPath    = "/track/ce/"
	TrackIdentifyPath = "/track/identify/"
	ProfilePath       = "/rest/2.2/profile"
)

const (
	userPropertyPrefix  = "cv_"
	eventPropertyPrefix = "ce_"
)

// Builder shapes identities and events into service requests.
// It performs no I/O; Tracker hands its output to a Client.
type Builder struct {
	config *Config
}

func NewBuilder(config *Config) *Builder {
	return &Builder{config: config}
}

func (b *Builder) Config() *Config {
	return b.config
}

// SetIdleTimeout changes the timeout reported on every later tracking request.
// Not safe for concurrent use with request building.
func (b *Builder) SetIdleTimeout(millis int64) {
	b.config.IdleTimeoutMillis = &millis
}

// ClearIdleTimeout drops the timeout parameter from later tracking requests.
func (b *Builder) ClearIdleTimeout() {
	b.config.IdleTimeoutMillis = nil
}

// BaseParams returns the parameters shared by every tracking request.
// User properties are written after cv_email, so a property named "email" replaces it.
func (b *Builder) BaseParams(identity Identity) url.Values {
	params := url.Values{}
	params.Set("host", b.config.Domain)
	params.Set("cookie", identity.CookieToken)
	if identity.IPAddress != "" {
		params.Set("ip", identity.IPAddress)
	}
	if b.config.IdleTimeoutMillis != nil {
		params.Set("timeout", strconv.FormatInt(*b.config.IdleTimeoutMillis, 10))
	}

	params.Set("cv_email", identity.Email)
	flatten(params, userPropertyPrefix, identity.Properties)

	return params
}

// EventRequest builds a custom event. data may be nil.
func (b *Builder) EventRequest(identity Identity, name string, data map[string]any) GetRequest {
	params := b.BaseParams(identity)
	params.Set("ce_name", name)
	flatten(params, eventPropertyPrefix, data)
	b.trailer(params)

	return GetRequest{Request: Request{Path: TrackEventPath, Query: params}}
}

// IdentifyRequest pushes the identity without an event.
func (b *Builder) IdentifyRequest(identity Identity) GetRequest {
	params := b.BaseParams(identity)
	b.trailer(params)

	return GetRequest{Request: Request{Path: TrackIdentifyPath, Query: params}}
}

// ProfileRequest looks up the visitor profile by email. It carries none of the tracking parameters.
func (b *Builder) ProfileRequest(identity Identity) PostRequest {
	form := url.Values{}
	form.Set("website", b.config.Domain)
	form.Set("email", identity.Email)

	return PostRequest{
		Request: Request{
			Path: ProfilePath,
			Headers: map[string]string{
				AuthorizationHeaderName:   BasicAuth(b.config.AccessKey),
				ClientUserAgentHeaderName: identity.UserAgent,
			},
		},
		Form: form,
	}
}

// trailer sets the formatting and attribution parameters; they win over same-named event data.
func (b *Builder) trailer(params url.Values) {
	params.Set("response", "json")
	params.Set("ce_app", b.sdkID())
}

func (b *Builder) sdkID() string {
	if b.config.SDKID == "" {
		return DefaultSDKID
	}

	return b.config.SDKID
}

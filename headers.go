package woopra

import "fmt"

// ClientUserAgentHeaderName carries the end user's agent on profile lookups,
// so the service attributes the lookup to the visitor rather than to this client
const ClientUserAgentHeaderName = "User-Agent"

// AuthorizationHeaderName carries the site access key on authenticated (POST) calls
// the service expects "Basic <accessKey>" with the key sent as-is, not base64 user:pass
const AuthorizationHeaderName = "Authorization"

// ContentTypeHeaderName is set on every POST; the service only accepts urlencoded forms
const ContentTypeHeaderName = "Content-Type"

// FormContentType is the body encoding of profile lookups
const FormContentType = "application/x-www-form-urlencoded"

// ClientRequestIDHeaderName is a unique identifier for the individual request
// used to correlate debug logs of a request with its response
// maps to: traceparent (otel standard); can be included for systems that don't yet support it
const ClientRequestIDHeaderName = "X-Request-ID"

// BasicAuth returns the Authorization value for an access key
func BasicAuth(accessKey string) string {
	return "Basic " + accessKey
}

// UserAgent returns a formatted user agent string
// e.g. "woopra-go/1.0.0 (linux 6.1; amd64)"
func UserAgent(app, version, os, osVersion, arch string) string {
	return fmt.Sprintf("%s/%s (%s %s; %s)", app, version, os, osVersion, arch)
}

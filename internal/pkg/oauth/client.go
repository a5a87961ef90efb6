package oauth

import (
	"net/http"
	"time"

	"github.com/doyensec/safeurl"
)

// NewHTTPClient builds the client used to fetch provider key sets.
// With safe set, requests to private, loopback and link-local addresses are
// refused after DNS resolution and only https on 443 is allowed.
func NewHTTPClient(timeout time.Duration, safe bool) *http.Client {
	if !safe {
		return &http.Client{Timeout: timeout}
	}

	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("https").
		SetAllowedPorts(443).
		Build()

	return safeurl.Client(config).Client
}

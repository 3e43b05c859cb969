package utils

import (
	"net/http"
	"time"
)

// HTTPClient is the shared outbound client for page fetches. The timeout
// bounds every verification request so a stalled upstream can never hold a
// request handler hostage.
var HTTPClient = &http.Client{
	Timeout: 8 * time.Second,
}

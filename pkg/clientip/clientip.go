// Package clientip resolves the address rate limits are keyed on.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP returns the host part of r.RemoteAddr. Proxy headers are not
// read here; behind a trusted proxy the server installs chi's RealIP
// middleware, which rewrites RemoteAddr to a bare IP before this runs.
func RealClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}

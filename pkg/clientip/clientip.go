package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

const (
	HeaderForwardedFor = "X-Forwarded-For"
	HeaderRealIP       = "X-Real-IP"
)

// FromRequest returns the normalized caller address, or "" when none of the
// sources holds a valid IP.
func FromRequest(r *http.Request) string {
	for entry := range strings.SplitSeq(r.Header.Get(HeaderForwardedFor), ",") {
		if ip := normalize(entry); ip != "" {
			return ip
		}
	}
	if ip := normalize(r.Header.Get(HeaderRealIP)); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

func normalize(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}

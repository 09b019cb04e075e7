// Package privacy reduces personal data before it is written to logs.
package privacy

import (
	"net"
	"net/http"
	"net/netip"
)

// AnonymizeIP keeps the network part of an address: /24 for IPv4 and /48 for IPv6.
// It returns "unknown" for an empty input and "invalid" for anything unparseable.
func AnonymizeIP(ip string) string {
	if ip == "" {
		return "unknown"
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "invalid"
	}
	addr = addr.Unmap().WithZone("")
	bits := 48
	if addr.Is4() {
		bits = 24
	}
	prefix, err := addr.Prefix(bits)
	if err != nil {
		return "invalid"
	}
	return prefix.Addr().String()
}

// ClientIP returns the anonymized peer address of r. Forwarding headers are not trusted.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return AnonymizeIP(host)
}

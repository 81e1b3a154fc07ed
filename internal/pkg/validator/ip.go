package validator

import (
	"net"
	"strings"
)

// UnknownIP stands in for a client address that cannot be parsed
const UnknownIP = "unknown"

// IsValidIP reports whether ip is a valid IPv4 or IPv6 address
func IsValidIP(ip string) bool {
	if ip == "" {
		return false
	}
	return net.ParseIP(ip) != nil
}

// NormalizeIP strips an IPv6 zone (fe80::1%eth0 -> fe80::1) and
// canonicalizes the textual form so one client maps to one key.
func NormalizeIP(ip string) string {
	if idx := strings.IndexByte(ip, '%'); idx != -1 {
		ip = ip[:idx]
	}
	if parsed := net.ParseIP(ip); parsed != nil {
		return parsed.String()
	}
	return ip
}

// ClientKey returns the normalized address, or UnknownIP
func ClientKey(ip string) string {
	normalized := NormalizeIP(ip)
	if IsValidIP(normalized) {
		return normalized
	}
	return UnknownIP
}

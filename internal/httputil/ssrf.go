package httputil

import (
	"fmt"
	"net"
)

// ValidateIP rejects IP addresses that an HTTP redirect must never reach:
// private ranges (RFC 1918), loopback, link-local unicast and multicast
// (which covers cloud metadata services), general multicast, and the
// unspecified address. The host parameter only feeds error messages.
func ValidateIP(ip net.IP, host string) error {
	switch {
	case ip.IsPrivate():
		return fmt.Errorf("refusing redirect to private IP: %s (%s)", host, ip)
	case ip.IsLoopback():
		return fmt.Errorf("refusing redirect to loopback IP: %s (%s)", host, ip)
	case ip.IsLinkLocalUnicast():
		return fmt.Errorf("refusing redirect to link-local IP: %s (%s)", host, ip)
	case ip.IsLinkLocalMulticast():
		return fmt.Errorf("refusing redirect to link-local multicast: %s (%s)", host, ip)
	case ip.IsMulticast():
		return fmt.Errorf("refusing redirect to multicast IP: %s (%s)", host, ip)
	case ip.IsUnspecified():
		return fmt.Errorf("refusing redirect to unspecified IP: %s (%s)", host, ip)
	}
	return nil
}

package infra

import (
	stdnet "net"
	"strings"

	gopsnet "github.com/shirou/gopsutil/v3/net"
)

// InterfaceAddr is one usable network interface with its IPv4 address.
type InterfaceAddr struct {
	Name string
	IP   string
}

// LocalIP returns the host's primary non-loopback IPv4 address. The UDP
// dial trick picks the interface the default route uses without sending
// any packets; interface enumeration is the fallback.
func LocalIP() string {
	conn, err := stdnet.Dial("udp", "8.8.8.8:80")
	if err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*stdnet.UDPAddr); ok {
			ip := addr.IP.String()
			if !strings.HasPrefix(ip, "127.") {
				return ip
			}
		}
	}

	for _, iface := range NetworkInterfaces() {
		return iface.IP
	}
	return "127.0.0.1"
}

// NetworkInterfaces lists non-loopback, non-link-local IPv4 interfaces.
func NetworkInterfaces() []InterfaceAddr {
	ifaces, err := gopsnet.Interfaces()
	if err != nil {
		return nil
	}

	var result []InterfaceAddr
	for _, iface := range ifaces {
		for _, addr := range iface.Addrs {
			ip := addr.Addr
			// Addrs come in CIDR form
			if i := strings.Index(ip, "/"); i >= 0 {
				ip = ip[:i]
			}
			parsed := stdnet.ParseIP(ip)
			if parsed == nil || parsed.To4() == nil {
				continue
			}
			if strings.HasPrefix(ip, "127.") || strings.HasPrefix(ip, "169.254.") {
				continue
			}
			result = append(result, InterfaceAddr{Name: iface.Name, IP: ip})
		}
	}
	return result
}

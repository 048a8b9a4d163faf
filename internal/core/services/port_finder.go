package services

import (
	"fmt"
	"net"
	"strconv"
)

// FindAvailablePort finds an available port on host in the given range.
// Port 0 is rejected: the kernel would hand out an arbitrary port and
// the caller could not report a stable address.
func FindAvailablePort(host string, startPort, endPort int) (int, error) {
	if startPort < 1 || startPort > 65535 {
		return 0, fmt.Errorf("start port %d out of range", startPort)
	}
	for port := startPort; port <= endPort; port++ {
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port on %s in range %d-%d", host, startPort, endPort)
}

// SPDX-License-Identifier: MPL-2.0

package diagnostics

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// hostSystem names the operating system distribution, such as
// "ubuntu 24.04" or "darwin 15.1". Errors propagate so the collector can
// fall back to the compile-time OS name.
func hostSystem(ctx context.Context) (string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(info.Platform + " " + info.PlatformVersion), nil
}

// hostProcessName identifies the running process as pid@hostname.
func hostProcessName() string {
	name, err := os.Hostname()
	if err != nil {
		name = "localhost"
	}
	return fmt.Sprintf("%d@%s", os.Getpid(), name)
}

// hostLocalAddr returns the first non-loopback unicast IPv4 address.
// Resolution failures report ok=false and are never surfaced to the caller;
// the process line simply omits its address suffix.
func hostLocalAddr() (string, bool) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", false
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String(), true
		}
	}
	return "", false
}

package scan

import (
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	// bannerReadCap is the maximum number of bytes read from an open
	// port during banner capture.
	bannerReadCap = 1024
	// bannerDisplayLen is the maximum banner length kept for display.
	bannerDisplayLen = 100
)

// httpLikePorts are ports conventionally associated with HTTP. Servers
// on these ports usually wait for a request, so the banner reader sends
// a minimal one before reading.
var httpLikePorts = map[int]bool{
	80:   true,
	443:  true,
	8080: true,
	8443: true,
}

// probe performs one TCP connect attempt against (host, port). It
// returns a PortResult only when the connection succeeds; every failure
// mode (refused, timeout, unreachable) is the expected outcome for a
// closed port and yields nil, never an error. Safe to run concurrently
// with any number of sibling probes.
func probe(target *Target, port int) *PortResult {
	addr := net.JoinHostPort(target.Host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, target.ConnectTimeout)
	if err != nil {
		return nil
	}
	// The probe owns exactly this one socket and releases it before
	// returning. Banner capture dials its own connection.
	_ = conn.Close()

	banner := BannerDisabled
	if target.WithBanner {
		banner = readBanner(target.Host, port, target.BannerTimeout)
	}

	return &PortResult{
		Port:    port,
		Service: ServiceName(port),
		Status:  StatusOpen,
		Banner:  banner,
	}
}

// readBanner opens a fresh connection to an already-confirmed open port
// and captures its initial response. HTTP-like ports get a minimal
// request first to provoke servers that do not speak unprompted. Every
// failure (dial, write, read, empty response) collapses to the
// BannerEmpty sentinel; banner capture never fails a scan.
func readBanner(host string, port int, timeout time.Duration) string {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return BannerEmpty
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return BannerEmpty
	}

	if httpLikePorts[port] {
		request := "GET / HTTP/1.1\r\nHost: " + host + "\r\n\r\n"
		if _, err := conn.Write([]byte(request)); err != nil {
			return BannerEmpty
		}
	}

	buf := make([]byte, bannerReadCap)
	n, err := conn.Read(buf)
	if n == 0 || (err != nil && n <= 0) {
		return BannerEmpty
	}

	banner := strings.TrimSpace(strings.ToValidUTF8(string(buf[:n]), ""))
	if banner == "" {
		return BannerEmpty
	}
	if runes := []rune(banner); len(runes) > bannerDisplayLen {
		banner = string(runes[:bannerDisplayLen])
	}
	return banner
}

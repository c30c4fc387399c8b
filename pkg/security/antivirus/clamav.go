package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"time"
)

// clamd rejects INSTREAM chunks above StreamMaxLength; 64KB stays well below
// the default.
const chunkSize = 64 << 10

// ClamAVScanner talks to a clamd daemon over TCP ("host:3310") or a unix
// socket ("/var/run/clamav/clamd.sock").
type ClamAVScanner struct {
	address string
	timeout time.Duration
}

var _ Scanner = (*ClamAVScanner)(nil)

func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{address: address, timeout: timeout}
}

func (c *ClamAVScanner) Name() string { return "clamav" }

func (c *ClamAVScanner) network() string {
	if strings.HasPrefix(c.address, "/") {
		return "unix"
	}
	return "tcp"
}

func (c *ClamAVScanner) dial(ctx context.Context) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	var d net.Dialer
	conn, err := d.DialContext(ctx, c.network(), c.address)
	if err != nil {
		return nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(c.timeout))
	return conn, nil
}

// Available sends PING and expects PONG.
func (c *ClamAVScanner) Available(ctx context.Context) bool {
	conn, err := c.dial(ctx)
	if err != nil {
		return false
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return false
	}
	reply, err := bufio.NewReader(conn).ReadString(0)
	if err != nil {
		return false
	}
	return strings.HasPrefix(reply, "PONG")
}

// Scan streams the resume with zINSTREAM. Any protocol failure rejects the
// file.
func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data []byte) Verdict {
	v := Verdict{Scanner: c.Name()}

	conn, err := c.dial(ctx)
	if err != nil {
		v.Err = fmt.Errorf("clamd connect: %w", err)
		return v
	}
	defer conn.Close()

	if err := writeStream(conn, data); err != nil {
		v.Err = fmt.Errorf("clamd stream %s: %w", filename, err)
		return v
	}

	reply, err := bufio.NewReader(conn).ReadString(0)
	if err != nil && reply == "" {
		v.Err = fmt.Errorf("clamd reply: %w", err)
		return v
	}
	return parseReply(v, strings.TrimRight(reply, "\x00\n "))
}

func writeStream(conn net.Conn, data []byte) error {
	if _, err := conn.Write([]byte("zINSTREAM\x00")); err != nil {
		return err
	}
	var size [4]byte
	for len(data) > 0 {
		n := min(len(data), chunkSize)
		binary.BigEndian.PutUint32(size[:], uint32(n))
		if _, err := conn.Write(size[:]); err != nil {
			return err
		}
		if _, err := conn.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	binary.BigEndian.PutUint32(size[:], 0)
	_, err := conn.Write(size[:])
	return err
}

// parseReply reads "stream: OK", "stream: <threat> FOUND" or
// "stream: <reason> ERROR".
func parseReply(v Verdict, reply string) Verdict {
	_, status, _ := strings.Cut(reply, ":")
	status = strings.TrimSpace(status)
	switch {
	case strings.HasSuffix(status, "FOUND"):
		v.Infected = true
		v.Threat = strings.TrimSpace(strings.TrimSuffix(status, "FOUND"))
	case status == "OK":
	default:
		v.Err = fmt.Errorf("clamd: %s", reply)
	}
	return v
}

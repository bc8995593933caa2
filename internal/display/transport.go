package display

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultPort is the TCP port displays listen on for SICP
	DefaultPort = 5000

	// DefaultConnectTimeout is the default timeout for establishing a connection
	DefaultConnectTimeout = 2 * time.Second

	// DefaultReadTimeout is the default timeout for reading a reply
	DefaultReadTimeout = 2 * time.Second

	// maxResponseSize bounds a single reply read. No SICP reply comes close;
	// the longest observed are model info strings under 40 bytes.
	maxResponseSize = 1024
)

// Transport carries one SICP request to a display and optionally collects the
// reply. Implementations are connectionless from the caller's view: every
// Send stands alone.
type Transport interface {
	// Send writes msg and, when expectResponse is true, reads one reply.
	// With expectResponse false it returns immediately after the write with
	// a nil reply.
	Send(msg []byte, expectResponse bool) ([]byte, error)

	// Target identifies the endpoint for logs and error context.
	Target() string
}

// TCPTransport speaks SICP over TCP, the transport the displays' LAN
// interface expose. Each Send dials a fresh connection and closes it before
// returning; displays accept a single control connection at a time, and
// holding one open starves other controllers.
type TCPTransport struct {
	// Host is the display's IP address or hostname
	Host string

	// Port is the SICP TCP port (default 5000)
	Port int

	// ConnectTimeout bounds dialing and writing
	ConnectTimeout time.Duration

	// ReadTimeout bounds waiting for the reply
	ReadTimeout time.Duration
}

// NewTCPTransport creates a TCP transport for the given host with default
// port and timeouts.
func NewTCPTransport(host string) *TCPTransport {
	return &TCPTransport{
		Host:           host,
		Port:           DefaultPort,
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultReadTimeout,
	}
}

// Target returns the host:port endpoint string
func (t *TCPTransport) Target() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// Send implements Transport over a one-shot TCP connection
func (t *TCPTransport) Send(msg []byte, expectResponse bool) ([]byte, error) {
	conn, err := net.DialTimeout("tcp", t.Target(), t.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(t.ConnectTimeout)); err != nil {
		return nil, err
	}
	if _, err := conn.Write(msg); err != nil {
		return nil, err
	}

	if !expectResponse {
		return nil, nil
	}

	if err := conn.SetReadDeadline(time.Now().Add(t.ReadTimeout)); err != nil {
		return nil, err
	}
	buf := make([]byte, maxResponseSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// SerialTransport speaks SICP over an RS-232 line at the protocol's fixed
// 9600 8N1 settings. The port is opened per Send, mirroring the TCP
// transport's one-shot contract.
type SerialTransport struct {
	// Device is the serial device path (e.g. "/dev/ttyUSB0" or "COM3")
	Device string

	// ReadTimeout bounds waiting for the reply
	ReadTimeout time.Duration
}

// NewSerialTransport creates a serial transport for the given device path
// with the default read timeout.
func NewSerialTransport(device string) *SerialTransport {
	return &SerialTransport{
		Device:      device,
		ReadTimeout: DefaultReadTimeout,
	}
}

// Target returns the serial device path
func (t *SerialTransport) Target() string {
	return t.Device
}

// Send implements Transport over a one-shot serial exchange
func (t *SerialTransport) Send(msg []byte, expectResponse bool) ([]byte, error) {
	mode := &serial.Mode{
		BaudRate: 9600,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(t.Device, mode)
	if err != nil {
		return nil, err
	}
	defer port.Close()

	if _, err := port.Write(msg); err != nil {
		return nil, err
	}

	if !expectResponse {
		return nil, nil
	}

	if err := port.SetReadTimeout(t.ReadTimeout); err != nil {
		return nil, err
	}
	buf := make([]byte, maxResponseSize)
	n, err := port.Read(buf)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// go.bug.st/serial reports a read timeout as zero bytes, not an error
		return nil, fmt.Errorf("no reply from %s: %w", t.Device, os.ErrDeadlineExceeded)
	}
	return buf[:n], nil
}

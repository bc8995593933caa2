package display

import (
	"fmt"
	"sync"
	"time"

	"github.com/tidworth/sicp/internal/logging"
	"github.com/tidworth/sicp/internal/protocol"
)

// DefaultDeviceID is the monitor ID displays ship with from the factory
const DefaultDeviceID = 1

// Client drives one display through the SICP command set. All methods are
// safe for concurrent use; a per-client mutex serializes exchanges because
// the protocol has no request correlation, so interleaved requests on one
// device would pair replies with the wrong caller.
//
// One Client per display. Distinct displays get distinct Clients and run in
// parallel freely.
type Client struct {
	transport Transport

	// deviceID is the monitor ID addressed by every request. Mutable:
	// SetMonitorID re-targets the client after the display acknowledges.
	deviceID byte

	mu sync.Mutex
}

// NewClient creates a client for a display at the given host, speaking TCP
// with default port and timeouts.
// host: display IP address or hostname (e.g. "192.168.45.210")
// deviceID: the display's monitor ID (typically 1; 0 broadcasts)
func NewClient(host string, deviceID byte) *Client {
	return &Client{
		transport: NewTCPTransport(host),
		deviceID:  deviceID,
	}
}

// NewClientWithTransport creates a client over a caller-supplied transport.
// Used for serial displays and for tests.
func NewClientWithTransport(transport Transport, deviceID byte) *Client {
	return &Client{
		transport: transport,
		deviceID:  deviceID,
	}
}

// DeviceID returns the monitor ID the client currently addresses
func (c *Client) DeviceID() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deviceID
}

// Target returns the transport endpoint, for logs and error messages
func (c *Client) Target() string {
	return c.transport.Target()
}

// SetTimeouts adjusts the transport timeouts when the underlying transport
// supports them. Zero values leave the corresponding timeout unchanged.
func (c *Client) SetTimeouts(connect, read time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch t := c.transport.(type) {
	case *TCPTransport:
		if connect > 0 {
			t.ConnectTimeout = connect
		}
		if read > 0 {
			t.ReadTimeout = read
		}
	case *SerialTransport:
		if read > 0 {
			t.ReadTimeout = read
		}
	}
}

// exchange sends one request and classifies the reply. Callers hold c.mu.
func (c *Client) exchange(command byte, params ...byte) (protocol.Response, error) {
	msg := protocol.BuildRequest(c.deviceID, command, params...)
	raw, err := c.transport.Send(msg, true)
	if err != nil {
		return protocol.Response{}, NewNetworkError(
			fmt.Sprintf("%s failed", protocol.CommandName(command)), err, c.transport.Target())
	}
	logging.LogExchange(c.transport.Target(), command, msg, raw)
	return protocol.Classify(raw), nil
}

// set performs a set-shape command: the display answers with a control
// reply, and only ACK counts as success. NAV, NACK and anything undecodable
// report false without an error; errors are reserved for transport failures.
func (c *Client) set(command byte, params ...byte) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setLocked(command, params...)
}

func (c *Client) setLocked(command byte, params ...byte) (bool, error) {
	resp, err := c.exchange(command, params...)
	if err != nil {
		return false, err
	}
	return resp.Kind == protocol.KindAck, nil
}

// get performs a get-shape command and returns the data payload with any
// leading opcode echo removed. Control replies map to the error taxonomy;
// an empty payload decodes as malformed.
func (c *Client) get(command byte, params ...byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(command, params...)
}

func (c *Client) getLocked(command byte, params ...byte) ([]byte, error) {
	resp, err := c.exchange(command, params...)
	if err != nil {
		return nil, err
	}
	switch resp.Kind {
	case protocol.KindData:
		payload := protocol.StripCommandEcho(command, resp.Payload)
		if len(payload) == 0 {
			return nil, NewMalformedError(command, "empty data payload")
		}
		return payload, nil
	case protocol.KindNotSupported:
		return nil, NewNotSupportedError(command)
	case protocol.KindChecksumError:
		return nil, NewChecksumFormatError(command)
	default:
		return nil, NewMalformedError(command, fmt.Sprintf("unexpected reply: %s", resp))
	}
}

// getByte performs a get-shape command whose payload carries a single value
// byte, the most common reply shape.
func (c *Client) getByte(command byte, params ...byte) (byte, error) {
	payload, err := c.get(command, params...)
	if err != nil {
		return 0, err
	}
	return payload[0], nil
}

package display

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tidworth/sicp/internal/protocol"
)

// fakeTransport replays scripted replies in order and records every frame
// sent, so tests can assert both the exact bytes on the wire and the decode
// of what came back.
type fakeTransport struct {
	script []scripted
	sent   [][]byte
}

type scripted struct {
	reply []byte
	err   error
}

func (f *fakeTransport) Send(msg []byte, expectResponse bool) ([]byte, error) {
	f.sent = append(f.sent, append([]byte(nil), msg...))
	i := len(f.sent) - 1
	if i >= len(f.script) {
		return nil, fmt.Errorf("unscripted request %d: % X", i, msg)
	}
	return f.script[i].reply, f.script[i].err
}

func (f *fakeTransport) Target() string { return "test:5000" }

// newFakeClient builds a client over a scripted transport with monitor ID 1
func newFakeClient(script ...scripted) (*Client, *fakeTransport) {
	ft := &fakeTransport{script: script}
	return NewClientWithTransport(ft, 1), ft
}

// replyFrame builds a well-formed display reply: size, monitor ID, the 0x01
// reply group marker, the command or control byte, data, checksum.
func replyFrame(command byte, data ...byte) []byte {
	frame := append([]byte{byte(len(data) + 5), 0x01, 0x01, command}, data...)
	var sum byte
	for _, b := range frame {
		sum ^= b
	}
	return append(frame, sum)
}

func ackReply() []byte  { return replyFrame(0x00, protocol.ControlAck) }
func navReply() []byte  { return replyFrame(0x00, protocol.ControlNAV) }
func nackReply() []byte { return replyFrame(0x00, protocol.ControlNACK) }

func dataReply(command byte, payload ...byte) []byte {
	return replyFrame(command, payload...)
}

func TestNewClient(t *testing.T) {
	client := NewClient("192.168.45.210", 1)

	if client.Target() != "192.168.45.210:5000" {
		t.Errorf("Target() = %s, want 192.168.45.210:5000", client.Target())
	}

	if client.DeviceID() != 1 {
		t.Errorf("DeviceID() = %d, want 1", client.DeviceID())
	}

	tcp, ok := client.transport.(*TCPTransport)
	if !ok {
		t.Fatalf("transport = %T, want *TCPTransport", client.transport)
	}
	if tcp.ConnectTimeout != DefaultConnectTimeout {
		t.Errorf("ConnectTimeout = %v, want %v", tcp.ConnectTimeout, DefaultConnectTimeout)
	}
	if tcp.ReadTimeout != DefaultReadTimeout {
		t.Errorf("ReadTimeout = %v, want %v", tcp.ReadTimeout, DefaultReadTimeout)
	}
}

func TestSetTimeouts(t *testing.T) {
	client := NewClient("192.168.45.210", 1)
	client.SetTimeouts(5*time.Second, 3*time.Second)

	tcp := client.transport.(*TCPTransport)
	if tcp.ConnectTimeout != 5*time.Second {
		t.Errorf("ConnectTimeout = %v, want 5s", tcp.ConnectTimeout)
	}
	if tcp.ReadTimeout != 3*time.Second {
		t.Errorf("ReadTimeout = %v, want 3s", tcp.ReadTimeout)
	}

	// zero leaves a timeout unchanged
	client.SetTimeouts(0, 10*time.Second)
	if tcp.ConnectTimeout != 5*time.Second {
		t.Errorf("ConnectTimeout = %v, want 5s after zero update", tcp.ConnectTimeout)
	}
	if tcp.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want 10s", tcp.ReadTimeout)
	}
}

func TestSet_SendsWellFormedFrame(t *testing.T) {
	client, ft := newFakeClient(scripted{reply: ackReply()})

	ok, err := client.SetPower(true)
	if err != nil {
		t.Fatalf("SetPower() error = %v", err)
	}
	if !ok {
		t.Error("SetPower() = false, want true")
	}

	want := []byte{0x06, 0x01, 0x00, 0x18, 0x02, 0x1D}
	if len(ft.sent) != 1 {
		t.Fatalf("sent %d frames, want 1", len(ft.sent))
	}
	if !bytes.Equal(ft.sent[0], want) {
		t.Errorf("sent frame = % X, want % X", ft.sent[0], want)
	}
}

func TestSet_ReplyHandling(t *testing.T) {
	tests := []struct {
		name  string
		reply []byte
		want  bool
	}{
		{"ack accepts", ackReply(), true},
		{"nav reports failure", navReply(), false},
		{"nack reports failure", nackReply(), false},
		{"unknown control reports failure", replyFrame(0x00, 0x42), false},
		{"data reply to a set reports failure", dataReply(0x18, 0x02), false},
		{"truncated reply reports failure", []byte{0x02, 0x01}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newFakeClient(scripted{reply: tt.reply})
			ok, err := client.SetPower(true)
			if err != nil {
				t.Fatalf("SetPower() error = %v, want nil", err)
			}
			if ok != tt.want {
				t.Errorf("SetPower() = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestSet_TransportError(t *testing.T) {
	client, _ := newFakeClient(scripted{err: errors.New("connection reset")})

	ok, err := client.SetPower(true)
	if ok {
		t.Error("SetPower() = true on transport failure")
	}
	if err == nil {
		t.Fatal("SetPower() error = nil, want network error")
	}
	if !IsNetworkError(err) {
		t.Errorf("error should be a network error, got %v", err)
	}

	var dispErr *DisplayError
	if !errors.As(err, &dispErr) {
		t.Fatalf("error type = %T, want *DisplayError", err)
	}
	if dispErr.Addr != "test:5000" {
		t.Errorf("Addr = %s, want test:5000", dispErr.Addr)
	}
}

func TestGet_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		entry   scripted
		check   func(error) bool
		checkID string
	}{
		{"nav maps to not supported", scripted{reply: navReply()}, IsNotSupported, "IsNotSupported"},
		{"nack maps to checksum/format", scripted{reply: nackReply()}, IsChecksumFormatError, "IsChecksumFormatError"},
		{"ack to a get is malformed", scripted{reply: ackReply()}, IsMalformedError, "IsMalformedError"},
		{"empty payload is malformed", scripted{reply: dataReply(0x19)}, IsMalformedError, "IsMalformedError"},
		{"truncated reply is malformed", scripted{reply: []byte{0x03, 0x01, 0x01}}, IsMalformedError, "IsMalformedError"},
		{"transport failure is network", scripted{err: errors.New("broken pipe")}, IsNetworkError, "IsNetworkError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newFakeClient(tt.entry)
			_, err := client.GetPower()
			if err == nil {
				t.Fatal("GetPower() error = nil, want error")
			}
			if !tt.check(err) {
				t.Errorf("%s(%v) = false, want true", tt.checkID, err)
			}
		})
	}
}

func TestGet_StripsCommandEcho(t *testing.T) {
	// brightness get answers on the video parameters opcode; some firmware
	// echoes the opcode as the first payload byte, some does not
	tests := []struct {
		name  string
		reply []byte
		want  int
	}{
		{"echoed opcode stripped", dataReply(0x33, 0x33, 0x41), 0x41},
		{"no echo passes through", dataReply(0x33, 0x41), 0x41},
		{"value matching no opcode untouched", dataReply(0x33, 0x41, 0x50), 0x41},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newFakeClient(scripted{reply: tt.reply})
			got, err := client.GetBrightness()
			if err != nil {
				t.Fatalf("GetBrightness() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetBrightness() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBroadcastAddressing(t *testing.T) {
	ft := &fakeTransport{script: []scripted{{reply: dataReply(0x19, 0x02)}}}
	client := NewClientWithTransport(ft, 0)

	if _, err := client.GetPower(); err != nil {
		t.Fatalf("GetPower() error = %v", err)
	}

	want := []byte{0x05, 0x00, 0x00, 0x19, 0x1C}
	if !bytes.Equal(ft.sent[0], want) {
		t.Errorf("broadcast frame = % X, want % X", ft.sent[0], want)
	}
}

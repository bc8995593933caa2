package display

import (
	"bytes"
	"net"
	"os"
	"testing"
	"time"
)

// startFakeDisplay listens on loopback and, for every connection, reads one
// request and writes the scripted reply. It reports what it received on the
// returned channel.
func startFakeDisplay(t *testing.T, reply []byte) (port int, received chan []byte) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	received = make(chan []byte, 4)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				buf := make([]byte, 64)
				n, err := conn.Read(buf)
				if err != nil {
					return
				}
				received <- append([]byte(nil), buf[:n]...)
				if reply != nil {
					conn.Write(reply)
					return
				}
				// No scripted reply: hold the connection open in silence
				// until the client gives up, so a read-deadline test sees
				// a timeout rather than EOF.
				conn.Read(buf)
			}(conn)
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port, received
}

func TestTCPTransport_RoundTrip(t *testing.T) {
	wantReply := dataReply(0x19, 0x02)
	port, received := startFakeDisplay(t, wantReply)

	tr := NewTCPTransport("127.0.0.1")
	tr.Port = port

	request := []byte{0x05, 0x01, 0x00, 0x19, 0x1D}
	reply, err := tr.Send(request, true)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !bytes.Equal(reply, wantReply) {
		t.Errorf("reply = % X, want % X", reply, wantReply)
	}

	got := <-received
	if !bytes.Equal(got, request) {
		t.Errorf("display received % X, want % X", got, request)
	}
}

func TestTCPTransport_NoResponse(t *testing.T) {
	port, received := startFakeDisplay(t, nil)

	tr := NewTCPTransport("127.0.0.1")
	tr.Port = port

	request := []byte{0x06, 0x00, 0x00, 0x18, 0x02, 0x1C}
	reply, err := tr.Send(request, false)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if reply != nil {
		t.Errorf("reply = % X, want nil without expectResponse", reply)
	}

	select {
	case got := <-received:
		if !bytes.Equal(got, request) {
			t.Errorf("display received % X, want % X", got, request)
		}
	case <-time.After(time.Second):
		t.Error("display never received the frame")
	}
}

func TestTCPTransport_ReadTimeout(t *testing.T) {
	// server that accepts and reads but never answers
	port, _ := startFakeDisplay(t, nil)

	tr := NewTCPTransport("127.0.0.1")
	tr.Port = port
	tr.ReadTimeout = 50 * time.Millisecond

	_, err := tr.Send([]byte{0x05, 0x01, 0x00, 0x19, 0x1D}, true)
	if err == nil {
		t.Fatal("Send() error = nil, want read timeout")
	}
	if !os.IsTimeout(err) {
		t.Errorf("os.IsTimeout(%v) = false, want true", err)
	}
}

func TestTCPTransport_ConnectionRefused(t *testing.T) {
	// grab a free port, then close the listener so nothing answers
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	tr := NewTCPTransport("127.0.0.1")
	tr.Port = port
	tr.ConnectTimeout = time.Second

	_, err = tr.Send([]byte{0x05, 0x01, 0x00, 0x19, 0x1D}, true)
	if err == nil {
		t.Fatal("Send() error = nil, want connection refused")
	}

	classified := ClassifyNetworkError(err, tr.Target())
	if classified.Type != ErrTypeConnectionRefused {
		t.Errorf("classified type = %v, want %v", classified.Type, ErrTypeConnectionRefused)
	}
}

func TestTCPTransport_Target(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"192.168.45.210", 5000, "192.168.45.210:5000"},
		{"display.local", 5000, "display.local:5000"},
		{"fe80::1", 5000, "[fe80::1]:5000"},
	}

	for _, tt := range tests {
		tr := &TCPTransport{Host: tt.host, Port: tt.port}
		if got := tr.Target(); got != tt.want {
			t.Errorf("Target() = %s, want %s", got, tt.want)
		}
	}
}

func TestClientOverTCP(t *testing.T) {
	port, _ := startFakeDisplay(t, dataReply(0x19, 0x02))

	tr := NewTCPTransport("127.0.0.1")
	tr.Port = port
	client := NewClientWithTransport(tr, 1)

	on, err := client.GetPower()
	if err != nil {
		t.Fatalf("GetPower() error = %v", err)
	}
	if !on {
		t.Error("GetPower() = false, want true")
	}
}

package wol

import (
	"bytes"
	"net"
	"testing"
	"time"
)

func TestParseMAC(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    net.HardwareAddr
		wantErr bool
	}{
		{"colons", "C4:BE:84:74:86:37", net.HardwareAddr{0xC4, 0xBE, 0x84, 0x74, 0x86, 0x37}, false},
		{"hyphens", "c4-be-84-74-86-37", net.HardwareAddr{0xC4, 0xBE, 0x84, 0x74, 0x86, 0x37}, false},
		{"cisco dots", "c4be.8474.8637", net.HardwareAddr{0xC4, 0xBE, 0x84, 0x74, 0x86, 0x37}, false},
		{"bare", "c4be84748637", net.HardwareAddr{0xC4, 0xBE, 0x84, 0x74, 0x86, 0x37}, false},
		{"mixed case", "c4:BE:84:74:86:37", net.HardwareAddr{0xC4, 0xBE, 0x84, 0x74, 0x86, 0x37}, false},
		{"surrounding whitespace", " c4:be:84:74:86:37 ", net.HardwareAddr{0xC4, 0xBE, 0x84, 0x74, 0x86, 0x37}, false},
		{"empty", "", nil, true},
		{"too short", "c4:be:84", nil, true},
		{"too long", "c4:be:84:74:86:37:99", nil, true},
		{"no hex digits", "zz:zz:zz:zz:zz:zz", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMAC(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMAC(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMAC(%q) error = %v", tt.input, err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("ParseMAC(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildMagicPacket(t *testing.T) {
	packet, err := BuildMagicPacket("C4:BE:84:74:86:37")
	if err != nil {
		t.Fatalf("BuildMagicPacket() error = %v", err)
	}

	if len(packet) != 102 {
		t.Fatalf("packet length = %d, want 102", len(packet))
	}

	for i := 0; i < 6; i++ {
		if packet[i] != 0xFF {
			t.Errorf("prefix byte %d = 0x%02X, want 0xFF", i, packet[i])
		}
	}

	mac := []byte{0xC4, 0xBE, 0x84, 0x74, 0x86, 0x37}
	for rep := 0; rep < 16; rep++ {
		start := 6 + rep*6
		if !bytes.Equal(packet[start:start+6], mac) {
			t.Errorf("repetition %d = % X, want % X", rep, packet[start:start+6], mac)
		}
	}
}

func TestBuildMagicPacket_InvalidMAC(t *testing.T) {
	if _, err := BuildMagicPacket("not a mac"); err == nil {
		t.Error("BuildMagicPacket() error = nil, want error")
	}
}

func TestWakeVia(t *testing.T) {
	// Listen on loopback instead of a broadcast address so the test does
	// not depend on the host's network configuration.
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer conn.Close()

	port := conn.LocalAddr().(*net.UDPAddr).Port
	if err := WakeVia("C4:BE:84:74:86:37", "127.0.0.1", port); err != nil {
		t.Fatalf("WakeVia() error = %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 256)
	n, _, err := conn.ReadFrom(buf)
	if err != nil {
		t.Fatalf("Failed to read packet: %v", err)
	}

	want, _ := BuildMagicPacket("C4:BE:84:74:86:37")
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("received packet = % X, want % X", buf[:n], want)
	}
}

func TestWakeVia_InvalidMAC(t *testing.T) {
	if err := WakeVia("c4:be", "127.0.0.1", 9); err == nil {
		t.Error("WakeVia() error = nil, want error")
	}
}

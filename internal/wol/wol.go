// Package wol sends Wake-on-LAN magic packets.
//
// The SICP power-state command only reaches a display whose controller is
// awake. A display in deep standby keeps its network interface listening
// for magic packets when its Wake-on-LAN setting is enabled, so waking a
// fully powered-down panel takes one UDP broadcast before any SICP
// traffic can succeed.
package wol

import (
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/tidworth/sicp/internal/logging"
	"go.uber.org/zap"
)

const (
	// DefaultBroadcast is the limited broadcast address. Displays on a
	// different subnet need a directed broadcast address instead.
	DefaultBroadcast = "255.255.255.255"

	// DefaultPort is the conventional Wake-on-LAN port.
	DefaultPort = 9

	// macRepetitions is how many times the hardware address repeats
	// after the synchronization prefix.
	macRepetitions = 16
)

// ParseMAC extracts a hardware address from any common spelling. All
// characters except hexadecimal digits are ignored, so "C4:BE:84:74:86:37",
// "c4-be-84-74-86-37", "c4be.8474.8637" and "c4be84748637" parse alike.
func ParseMAC(mac string) (net.HardwareAddr, error) {
	var digits strings.Builder
	for _, r := range mac {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
			digits.WriteRune(r)
		}
	}
	if digits.Len() != 12 {
		return nil, fmt.Errorf("MAC address %q must resolve to exactly 12 hexadecimal digits", mac)
	}

	hw := make(net.HardwareAddr, 6)
	if _, err := hex.Decode(hw, []byte(digits.String())); err != nil {
		return nil, fmt.Errorf("MAC address %q: %w", mac, err)
	}
	return hw, nil
}

// BuildMagicPacket assembles the 102-byte magic packet for a MAC address:
// six 0xFF synchronization bytes followed by the hardware address repeated
// sixteen times.
func BuildMagicPacket(mac string) ([]byte, error) {
	hw, err := ParseMAC(mac)
	if err != nil {
		return nil, err
	}

	packet := make([]byte, 0, 6+macRepetitions*len(hw))
	for i := 0; i < 6; i++ {
		packet = append(packet, 0xFF)
	}
	for i := 0; i < macRepetitions; i++ {
		packet = append(packet, hw...)
	}
	return packet, nil
}

// Wake broadcasts a magic packet for the MAC address on the local network.
func Wake(mac string) error {
	return WakeVia(mac, DefaultBroadcast, DefaultPort)
}

// WakeVia sends the magic packet to a specific address and port. Use a
// directed broadcast address (for example 192.168.1.255) when the display
// sits on another subnet and routers do not forward limited broadcasts.
func WakeVia(mac, addr string, port int) error {
	packet, err := BuildMagicPacket(mac)
	if err != nil {
		return err
	}

	target := net.JoinHostPort(addr, strconv.Itoa(port))
	conn, err := net.Dial("udp", target)
	if err != nil {
		return fmt.Errorf("failed to open UDP socket for %s: %w", target, err)
	}
	defer conn.Close()

	if _, err := conn.Write(packet); err != nil {
		return fmt.Errorf("failed to send magic packet to %s: %w", target, err)
	}

	logging.Debug("Sent Wake-on-LAN packet",
		zap.String("mac", mac),
		zap.String("target", target),
		zap.Int("bytes", len(packet)))

	return nil
}

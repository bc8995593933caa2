package display

import (
	"fmt"
	"strconv"
	"strings"
)

// printableASCII filters a reply payload down to printable ASCII. Displays
// pad text fields with NUL or 0xFF bytes and occasionally leak control
// characters into them.
func printableASCII(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if c >= 0x20 && c <= 0x7E {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isHexDigits(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return len(s) > 0
}

// formatIPValue renders an IP configuration value for display. Address
// parameters arrive as twelve ASCII digits (three per octet, zero padded)
// and MAC parameters as either six raw bytes or twelve hex digits,
// depending on firmware. Anything unrecognized falls back to the printable
// text, then the hex dump.
func formatIPValue(parameter byte, value []byte) (formatted, ascii, hex string) {
	ascii = printableASCII(value)

	var hexDump strings.Builder
	for _, b := range value {
		fmt.Fprintf(&hexDump, "%02X", b)
	}
	hex = hexDump.String()

	switch {
	case parameter >= 0x01 && parameter <= 0x05 && len(ascii) == 12 && isDigits(ascii):
		octets := make([]string, 0, 4)
		for i := 0; i < 12; i += 3 {
			octet, _ := strconv.Atoi(ascii[i : i+3])
			octets = append(octets, strconv.Itoa(octet))
		}
		formatted = strings.Join(octets, ".")
	case parameter == 0x06 || parameter == 0x07:
		if len(value) == 6 {
			pairs := make([]string, 0, 6)
			for _, b := range value {
				pairs = append(pairs, fmt.Sprintf("%02X", b))
			}
			formatted = strings.Join(pairs, ":")
		} else if len(ascii) == 12 && isHexDigits(ascii) {
			pairs := make([]string, 0, 6)
			for i := 0; i < 12; i += 2 {
				pairs = append(pairs, strings.ToUpper(ascii[i:i+2]))
			}
			formatted = strings.Join(pairs, ":")
		}
	}

	if formatted == "" {
		switch {
		case ascii != "":
			formatted = ascii
		case hex != "":
			formatted = hex
		default:
			formatted = "(no data)"
		}
	}
	return formatted, ascii, hex
}

//go:build ignore

// Decode-frame pretty-prints captured SICP frames.
//
// Frames come in as hex strings, one per argument or one per stdin line
// when no arguments are given. Spaces and 0x prefixes in the hex are
// ignored, so output copied from wireshark or the fake display's -v log
// pastes straight in.
//
// Usage:
//
//	go run tools/decode-frame.go 0619000018
//	go run tools/decode-frame.go "06 01 00 18 02 1D"
//	grep '^<-' capture.log | cut -c4- | go run tools/decode-frame.go
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/tidworth/sicp/internal/protocol"
)

func main() {
	inputs := os.Args[1:]
	if len(inputs) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				inputs = append(inputs, line)
			}
		}
	}
	if len(inputs) == 0 {
		fmt.Println("Usage: decode-frame <hex-frame> [hex-frame...]")
		fmt.Println("Example: decode-frame 0619000018")
		os.Exit(1)
	}

	for i, input := range inputs {
		if i > 0 {
			fmt.Println()
		}
		decode(input)
	}
}

func decode(input string) {
	cleaned := strings.NewReplacer(" ", "", ":", "", "0x", "", "0X", "").Replace(input)
	frame, err := hex.DecodeString(cleaned)
	if err != nil {
		fmt.Printf("%s\n  not hex: %v\n", input, err)
		return
	}

	fmt.Printf("% X\n", frame)
	if len(frame) < protocol.MinFrameSize {
		fmt.Printf("  too short: %d bytes, minimum %d\n", len(frame), protocol.MinFrameSize)
		return
	}

	fmt.Printf("  size        %d (frame is %d bytes)\n", frame[protocol.OffsetSize], len(frame))
	fmt.Printf("  monitor ID  %d\n", frame[protocol.OffsetMonitorID])

	// Byte [2] discriminates direction: requests carry the broadcast group,
	// replies carry 0x01
	if frame[protocol.OffsetGroupID] == 0x01 {
		decodeReply(frame)
	} else {
		decodeRequest(frame)
	}

	if err := protocol.ValidateFrame(frame); err != nil {
		fmt.Printf("  invalid     %v\n", err)
	} else {
		fmt.Printf("  checksum    0x%02X ok\n", frame[len(frame)-1])
	}
}

func decodeRequest(frame []byte) {
	command := frame[protocol.OffsetCommand]
	params := frame[protocol.OffsetCommand+1 : len(frame)-1]
	fmt.Printf("  direction   request\n")
	fmt.Printf("  command     %s (0x%02X)\n", protocol.CommandName(command), command)
	if len(params) > 0 {
		fmt.Printf("  params      % X%s\n", params, asciiSuffix(params))
	}
}

func decodeReply(frame []byte) {
	fmt.Printf("  direction   reply\n")
	resp := protocol.Classify(frame)
	switch resp.Kind {
	case protocol.KindData:
		fmt.Printf("  answers     %s (0x%02X)\n", protocol.CommandName(resp.Command), resp.Command)
		fmt.Printf("  payload     % X%s\n", resp.Payload, asciiSuffix(resp.Payload))
		if stripped := protocol.StripCommandEcho(resp.Command, resp.Payload); len(stripped) != len(resp.Payload) {
			fmt.Printf("  echo        opcode repeated, data is % X\n", stripped)
		}
	case protocol.KindMalformed:
		fmt.Printf("  kind        malformed\n")
	default:
		fmt.Printf("  kind        %s (0x%02X)\n", resp.Kind, resp.Code)
	}
}

// asciiSuffix renders printable payloads alongside the hex, the way serial
// numbers and model strings come back
func asciiSuffix(data []byte) string {
	printable := 0
	var b strings.Builder
	for _, c := range data {
		if c >= 0x20 && c <= 0x7E {
			printable++
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	if printable < len(data)/2 || len(data) < 3 {
		return ""
	}
	return fmt.Sprintf("  %q", b.String())
}

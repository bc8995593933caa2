//go:build ignore

// Fake-display is an in-process SICP display for exercising sicpctl and
// sicp-bridge without hardware.
//
// It listens for TCP control connections, validates inbound frames, and
// answers from a mutable state table: ACK for set commands, data replies
// for get commands, NAV for commands listed as unsupported. Requests
// addressed to the wrong monitor ID are dropped without a reply, the way
// real displays go silent on the wire.
//
// Quirks seen in field firmware are reproduced behind flags:
//
//	-echo=false      omit the opcode duplicate in data payloads
//	-single-volume   answer volume queries with one level, no audio-out
//	-nav <list>      answer NAV for these set commands (names or hex)
//
// Usage:
//
//	go run tools/fake-display.go
//	go run tools/fake-display.go -addr :5000 -id 2 -nav TestPatternSet,0x3E
//	sicpctl status --host 127.0.0.1
package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/tidworth/sicp/internal/protocol"
)

var (
	listenAddr   = flag.String("addr", ":5000", "listen address")
	monitorID    = flag.Int("id", 1, "monitor ID the display answers on")
	echoOpcode   = flag.Bool("echo", true, "repeat the opcode as the first data byte")
	singleVolume = flag.Bool("single-volume", false, "answer volume queries with one level")
	navList      = flag.String("nav", "", "comma-separated set commands to answer NAV for")
	verbose      = flag.Bool("v", false, "log every frame")
)

// state is everything the fake display remembers. One mutex covers it all;
// the protocol is one exchange per connection and contention is irrelevant.
type state struct {
	mu sync.Mutex

	monitorID byte
	groupID   byte

	power     byte
	backlight byte
	wol       byte
	coldStart byte
	autoSign  byte
	powerSave byte
	smart     byte
	apm       byte

	video       [7]byte // brightness, color, contrast, sharpness, tint, black level, gamma
	colorPreset byte
	fineStep    byte
	style       byte
	pattern     byte
	android4K   byte
	logo        byte
	source      byte
	playlist    byte

	volume  [2]byte
	muted   byte
	avMuted byte

	remoteLock byte
	osdSecs    byte

	serial    string
	temps     []byte // raw sensor slots, 0xFF marks an empty one
	modelInfo map[byte]string
	sicpInfo  map[byte]string
	ipValues  map[byte]string

	nav map[byte]bool // set opcodes answered with NAV
}

func newState(id byte, nav map[byte]bool) *state {
	return &state{
		monitorID:   id,
		groupID:     0xFF,
		power:       protocol.PowerOn,
		backlight:   protocol.BacklightOn,
		coldStart:   0x01,
		video:       [7]byte{70, 50, 50, 50, 50, 50, 2},
		colorPreset: 0x06,
		fineStep:    65,
		source:      0x0D, // hdmi1
		volume:      [2]byte{40, 60},
		osdSecs:     20,
		serial:      "FZ4A2332000123",
		temps:       []byte{42, 0xFF, 39, 0xFF},
		modelInfo: map[byte]string{
			0x00: "65BDL4550D/00",
			0x01: "FB04.05T",
			0x02: "2023-06-14",
			0x03: "11",
		},
		sicpInfo: map[byte]string{
			0x00: "V2.10",
			0x01: "SICP",
			0x02: "2.10",
			0x03: "1.0.2",
		},
		ipValues: map[byte]string{
			0x01: "192.168.1.50",
			0x02: "255.255.255.0",
			0x03: "192.168.1.1",
			0x04: "192.168.1.1",
			0x05: "8.8.8.8",
			0x06: "C4:BE:84:74:86:37",
			0x07: "C4:BE:84:74:86:38",
		},
		nav: nav,
	}
}

func main() {
	flag.Parse()

	nav, err := parseNAVList(*navList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -nav list: %v\n", err)
		os.Exit(1)
	}
	if *monitorID < 1 || *monitorID > 255 {
		fmt.Fprintf(os.Stderr, "monitor ID must be between 1 and 255\n")
		os.Exit(1)
	}

	sim := newState(byte(*monitorID), nav)

	ln, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "listen: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("fake display on %s, monitor ID %d (echo=%v single-volume=%v)\n",
		ln.Addr(), sim.monitorID, *echoOpcode, *singleVolume)
	for name := range nav {
		fmt.Printf("  answering NAV for %s\n", protocol.CommandName(name))
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			fmt.Fprintf(os.Stderr, "accept: %v\n", err)
			continue
		}
		go serve(conn, sim)
	}
}

// serve handles one control connection. Controllers dial per exchange, so
// the usual lifetime is a single request, but back-to-back frames on one
// connection work too.
func serve(conn net.Conn, sim *state) {
	defer conn.Close()

	for {
		frame, err := readFrame(conn)
		if err != nil {
			if err != io.EOF && *verbose {
				fmt.Printf("  read error from %s: %v\n", conn.RemoteAddr(), err)
			}
			return
		}
		if *verbose {
			fmt.Printf("<- % X\n", frame)
		}

		reply, ok := sim.handle(frame)
		if !ok {
			// wrong monitor ID: stay silent, let the controller time out
			if *verbose {
				fmt.Printf("   dropped, addressed to ID %d\n", frame[protocol.OffsetMonitorID])
			}
			return
		}
		if *verbose {
			fmt.Printf("-> % X\n", reply)
		}
		if _, err := conn.Write(reply); err != nil {
			return
		}
	}
}

// readFrame reads one size-prefixed frame off the wire. The size byte is
// self-inclusive, so a frame is the size byte plus size-1 more.
func readFrame(conn net.Conn) ([]byte, error) {
	var size [1]byte
	if _, err := io.ReadFull(conn, size[:]); err != nil {
		return nil, err
	}
	if int(size[0]) < protocol.MinFrameSize {
		// can't resync a stream with a garbage size; drain nothing, answer
		// NACK via the short frame path
		return []byte{size[0]}, nil
	}
	frame := make([]byte, size[0])
	frame[0] = size[0]
	if _, err := io.ReadFull(conn, frame[1:]); err != nil {
		return nil, err
	}
	return frame, nil
}

// handle produces the reply for one request frame. The second result is
// false when the display should stay silent.
func (s *state) handle(frame []byte) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := protocol.ValidateFrame(frame); err != nil {
		return s.control(protocol.ControlNACK), true
	}

	target := frame[protocol.OffsetMonitorID]
	if target != s.monitorID && target != protocol.MonitorBroadcast {
		return nil, false
	}

	command := frame[protocol.OffsetCommand]
	params := frame[protocol.OffsetCommand+1 : len(frame)-1]

	if s.nav[command] {
		return s.control(protocol.ControlNAV), true
	}
	if reply, handled := s.handleSet(command, params); handled {
		return reply, true
	}
	if reply, handled := s.handleGet(command, params); handled {
		return reply, true
	}
	return s.control(protocol.ControlNAV), true
}

func (s *state) handleSet(command byte, params []byte) ([]byte, bool) {
	ack := func() []byte { return s.control(protocol.ControlAck) }

	switch command {
	case protocol.CmdPowerStateSet:
		if len(params) != 1 || (params[0] != protocol.PowerOn && params[0] != protocol.PowerOff) {
			return s.control(protocol.ControlNACK), true
		}
		s.power = params[0]
		return ack(), true

	case protocol.CmdBacklightSet:
		s.backlight = first(params)
		return ack(), true

	case protocol.CmdVideoParametersSet:
		for i := 0; i < len(s.video) && i < len(params); i++ {
			if params[i] != protocol.ParamNoChange {
				s.video[i] = params[i]
			}
		}
		return ack(), true

	case protocol.CmdColorTemperatureSet:
		s.colorPreset = first(params)
		return ack(), true

	case protocol.CmdColorTemperatureFineSet:
		// fine adjustment only works in the User 2 preset
		if s.colorPreset != protocol.ColorTempUser2 {
			return s.control(protocol.ControlNAV), true
		}
		s.fineStep = first(params)
		return ack(), true

	case protocol.CmdPictureStyleSet:
		s.style = first(params)
		return ack(), true

	case protocol.CmdTestPatternSet:
		s.pattern = first(params)
		return ack(), true

	case protocol.CmdAndroid4KSet:
		s.android4K = first(params)
		return ack(), true

	case protocol.CmdPowerOnLogoSet:
		s.logo = first(params)
		return ack(), true

	case protocol.CmdInputSourceSet:
		if len(params) < 2 {
			return s.control(protocol.ControlNACK), true
		}
		s.source, s.playlist = params[0], params[1]
		return ack(), true

	case protocol.CmdVolumeSet:
		for i := 0; i < 2 && i < len(params); i++ {
			if params[i] != protocol.ParamNoChange {
				s.volume[i] = params[i]
			}
		}
		return ack(), true

	case protocol.CmdMuteSet:
		s.muted = first(params)
		return ack(), true

	case protocol.CmdAVMuteSet:
		s.avMuted = first(params)
		return ack(), true

	case protocol.CmdWOLSet:
		s.wol = first(params)
		return ack(), true

	case protocol.CmdColdStartSet:
		s.coldStart = first(params)
		return ack(), true

	case protocol.CmdAutoSignalSet:
		s.autoSign = first(params)
		return ack(), true

	case protocol.CmdPowerSaveSet:
		s.powerSave = first(params)
		return ack(), true

	case protocol.CmdSmartPowerSet:
		s.smart = first(params)
		return ack(), true

	case protocol.CmdAPMSet:
		s.apm = first(params)
		return ack(), true

	case protocol.CmdRemoteLockSet:
		s.remoteLock = first(params)
		return ack(), true

	case protocol.CmdOSDInfoSet:
		if len(params) != 1 || params[0] > 60 {
			return s.control(protocol.ControlNACK), true
		}
		s.osdSecs = params[0]
		return ack(), true

	case protocol.CmdGroupIDSet:
		s.groupID = first(params)
		return ack(), true

	case protocol.CmdMonitorIDSet:
		id := first(params)
		if id == 0 {
			return s.control(protocol.ControlNAV), true
		}
		s.monitorID = id
		return ack(), true

	case protocol.CmdRemoteControlSim:
		if len(params) < 1 {
			return s.control(protocol.ControlNACK), true
		}
		return ack(), true
	}
	return nil, false
}

func (s *state) handleGet(command byte, params []byte) ([]byte, bool) {
	switch command {
	case protocol.CmdPowerStateGet:
		return s.data(command, s.power), true
	case protocol.CmdBacklightGet:
		return s.data(command, s.backlight), true
	case protocol.CmdVideoParametersGet:
		return s.data(command, s.video[:]...), true
	case protocol.CmdColorTemperatureGet:
		return s.data(command, s.colorPreset), true
	case protocol.CmdColorTemperatureFineGet:
		return s.data(command, s.fineStep), true
	case protocol.CmdPictureStyleGet:
		return s.data(command, s.style), true
	case protocol.CmdTestPatternGet:
		return s.data(command, s.pattern), true
	case protocol.CmdAndroid4KGet:
		return s.data(command, s.android4K), true
	case protocol.CmdPowerOnLogoGet:
		return s.data(command, s.logo), true
	case protocol.CmdVideoSignalGet:
		return s.data(command, 0x01), true
	case protocol.CmdCurrentSourceGet:
		return s.data(command, s.source, s.playlist), true

	case protocol.CmdVolumeGet:
		if *singleVolume {
			return s.data(command, s.volume[0]), true
		}
		return s.data(command, s.volume[:]...), true
	case protocol.CmdMuteGet:
		return s.data(command, s.muted), true
	case protocol.CmdAVMuteGet:
		return s.data(command, s.avMuted), true

	case protocol.CmdWOLGet:
		return s.data(command, s.wol), true
	case protocol.CmdColdStartGet:
		return s.data(command, s.coldStart), true
	case protocol.CmdAutoSignalGet:
		return s.data(command, s.autoSign), true
	case protocol.CmdPowerSaveGet:
		return s.data(command, s.powerSave), true
	case protocol.CmdSmartPowerGet:
		return s.data(command, s.smart), true
	case protocol.CmdAPMGet:
		return s.data(command, s.apm), true

	case protocol.CmdRemoteLockGet:
		return s.data(command, s.remoteLock), true
	case protocol.CmdOSDInfoGet:
		return s.data(command, s.osdSecs), true
	case protocol.CmdGroupIDGet:
		return s.data(command, s.groupID), true

	case protocol.CmdTemperatureGet:
		return s.data(command, s.temps...), true
	case protocol.CmdSerialGet:
		return s.data(command, []byte(s.serial)...), true

	case protocol.CmdModelInfoGet:
		text, ok := s.modelInfo[first(params)]
		if !ok {
			return s.control(protocol.ControlNAV), true
		}
		return s.data(command, []byte(text)...), true

	case protocol.CmdSICPInfoGet:
		text, ok := s.sicpInfo[first(params)]
		if !ok {
			return s.control(protocol.ControlNAV), true
		}
		return s.data(command, []byte(text)...), true

	case protocol.CmdIPParameterGet:
		if len(params) < 2 {
			return s.control(protocol.ControlNACK), true
		}
		value, ok := s.ipValues[params[0]]
		if !ok {
			return s.control(protocol.ControlNAV), true
		}
		body := append([]byte{params[0], params[1]}, []byte(value)...)
		return s.data(command, body...), true
	}
	return nil, false
}

// control builds a control reply frame
func (s *state) control(code byte) []byte {
	return buildReply(s.monitorID, 0x00, code)
}

// data builds a data reply frame, duplicating the opcode in the payload
// when the echo quirk is on
func (s *state) data(command byte, payload ...byte) []byte {
	body := make([]byte, 0, len(payload)+2)
	body = append(body, command)
	if *echoOpcode {
		body = append(body, command)
	}
	body = append(body, payload...)
	return buildReply(s.monitorID, body...)
}

func buildReply(monitorID byte, body ...byte) []byte {
	frame := make([]byte, 0, len(body)+4)
	frame = append(frame, byte(len(body)+4), monitorID, 0x01)
	frame = append(frame, body...)
	frame = append(frame, protocol.Checksum(frame))
	return frame
}

func first(params []byte) byte {
	if len(params) == 0 {
		return 0
	}
	return params[0]
}

// parseNAVList resolves a comma-separated mix of command names and hex
// opcodes into a lookup set.
func parseNAVList(list string) (map[byte]bool, error) {
	nav := make(map[byte]bool)
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if code, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(item), "0x"), 16, 8); err == nil {
			nav[byte(code)] = true
			continue
		}
		code, ok := commandByName(item)
		if !ok {
			return nil, fmt.Errorf("unknown command %q", item)
		}
		nav[code] = true
	}
	return nav, nil
}

func commandByName(name string) (byte, bool) {
	for code := 0; code <= 0xFF; code++ {
		if strings.EqualFold(protocol.CommandName(byte(code)), name) {
			return byte(code), true
		}
	}
	return 0, false
}

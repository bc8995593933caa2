package protocol

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// UnknownValueError reports a label or numeric code that does not resolve in
// a value domain.
type UnknownValueError struct {
	Domain string
	Value  string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("unknown %s value %q", e.Domain, e.Value)
}

// Domain maps between human-readable labels and the single-byte codes a
// command carries. Each domain knows its canonical labels, accepted aliases
// and the display names used when decoding responses.
type Domain struct {
	name    string
	codes   map[string]byte
	names   map[byte]string
	maxCode byte
	rewrite func(string) string
}

// Name returns the domain's name, used in error messages.
func (d *Domain) Name() string { return d.name }

// Code resolves a label to its byte code. Resolution is forgiving: the input
// is lowercased, underscores and spaces become hyphens, and surrounding
// whitespace is dropped before lookup. Inputs that match no label are parsed
// as integers (decimal or 0x-prefixed hex) and accepted when they fit the
// domain's code range, so callers can always pass raw codes for values a
// newer display firmware defines but this table does not.
func (d *Domain) Code(value string) (byte, error) {
	token := normalizeToken(value)
	if d.rewrite != nil {
		token = d.rewrite(token)
	}
	if code, ok := d.codes[token]; ok {
		return code, nil
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(value), 0, 64); err == nil {
		max := int64(0xFF)
		if d.maxCode != 0 {
			max = int64(d.maxCode)
		}
		if n >= 0 && n <= max {
			return byte(n), nil
		}
	}
	return 0, &UnknownValueError{Domain: d.name, Value: value}
}

// MustCode is like Code but panics on unresolvable values. For
// package-level tables built from curated names.
func (d *Domain) MustCode(value string) byte {
	code, err := d.Code(value)
	if err != nil {
		panic(err)
	}
	return code
}

// Label returns the display name for a code, falling back to hex for codes
// outside the table.
func (d *Domain) Label(code byte) string {
	if name, ok := d.names[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", code)
}

// Labels returns every accepted label, canonical names and aliases alike,
// sorted for stable help output.
func (d *Domain) Labels() []string {
	labels := make([]string, 0, len(d.codes))
	for label := range d.codes {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func normalizeToken(value string) string {
	token := strings.ToLower(strings.TrimSpace(value))
	token = strings.ReplaceAll(token, "_", "-")
	return strings.ReplaceAll(token, " ", "-")
}

// normalizeKelvin rewrites numeric Kelvin spellings to the canonical
// "<digits>k" label, so "6500", "6500K" and "K6500" all resolve like
// "6500k". Everything else passes through untouched.
func normalizeKelvin(token string) string {
	digits := strings.TrimSuffix(strings.TrimPrefix(token, "k"), "k")
	if digits == "" {
		return token
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return token
		}
	}
	return digits + "k"
}

// InputSource covers the source selection codes from the SICP 5.1 input
// table. Several sources have more than one accepted spelling; decoding uses
// one display name per code.
var InputSource = &Domain{
	name: "input source",
	codes: map[string]byte{
		"none":               0x00,
		"video":              0x01,
		"svideo":             0x02,
		"s-video":            0x02,
		"component":          0x03,
		"cvi2":               0x04,
		"vga":                0x05,
		"hdmi2":              0x06,
		"displayport2":       0x07,
		"usb2":               0x08,
		"carddvi-d":          0x09,
		"displayport1":       0x0A,
		"cardops":            0x0B,
		"usb1":               0x0C,
		"hdmi":               0x0D,
		"hdmi1":              0x0D,
		"dvi-d":              0x0E,
		"hdmi3":              0x0F,
		"browser":            0x10,
		"smartcms":           0x11,
		"dms":                0x12,
		"digitalmediaserver": 0x12,
		"internalstorage":    0x13,
		"mediaplayer":        0x16,
		"pdfplayer":          0x17,
		"custom":             0x18,
		"customapp":          0x18,
		"hdmi4":              0x19,
		"vga2":               0x1A,
		"vga3":               0x1B,
		"iwb":                0x1C,
		"cmndplay":           0x1D,
		"cmndplayweb":        0x1D,
		"home":               0x1E,
		"launcher":           0x1E,
		"usb-typec":          0x1F,
		"usbtypec":           0x1F,
		"usbc":               0x1F,
		"kiosk":              0x20,
		"smartinfo":          0x21,
		"tuner":              0x22,
		"googlecast":         0x23,
		"interact":           0x24,
		"usb-typec2":         0x25,
		"usbtypec2":          0x25,
		"usbc2":              0x25,
		"screenshare":        0x26,
	},
	names: map[byte]string{
		0x00: "none",
		0x01: "video",
		0x02: "s-video",
		0x03: "component",
		0x04: "cvi2",
		0x05: "vga",
		0x06: "hdmi2",
		0x07: "displayport2",
		0x08: "usb2",
		0x09: "carddvi-d",
		0x0A: "displayport1",
		0x0B: "cardops",
		0x0C: "usb1",
		0x0D: "hdmi1",
		0x0E: "dvi-d",
		0x0F: "hdmi3",
		0x10: "browser",
		0x11: "smartcms",
		0x12: "dms",
		0x13: "internalstorage",
		0x16: "mediaplayer",
		0x17: "pdfplayer",
		0x18: "customapp",
		0x19: "hdmi4",
		0x1A: "vga2",
		0x1B: "vga3",
		0x1C: "iwb",
		0x1D: "cmndplayweb",
		0x1E: "home/launcher",
		0x1F: "usb-typec",
		0x20: "kiosk",
		0x21: "smartinfo",
		0x22: "tuner",
		0x23: "googlecast",
		0x24: "interact",
		0x25: "usb-typec2",
		0x26: "screenshare",
	},
}

var PictureStyle = &Domain{
	name: "picture style",
	codes: map[string]byte{
		"highbright":     0x00,
		"srgb":           0x01,
		"vivid":          0x02,
		"natural":        0x03,
		"standard":       0x04,
		"video":          0x05,
		"static-signage": 0x06,
		"text":           0x07,
		"energy-saving":  0x08,
		"soft":           0x09,
		"user":           0x0A,
	},
	names: map[byte]string{
		0x00: "highbright",
		0x01: "srgb",
		0x02: "vivid",
		0x03: "natural",
		0x04: "standard",
		0x05: "video",
		0x06: "static-signage",
		0x07: "text",
		0x08: "energy-saving",
		0x09: "soft",
		0x0A: "user",
	},
}

var TestPattern = &Domain{
	name: "test pattern",
	codes: map[string]byte{
		"off":               0x00,
		"white-100":         0x01,
		"white":             0x01,
		"red":               0x02,
		"green":             0x03,
		"blue":              0x04,
		"black":             0x05,
		"half-white-top":    0x06,
		"half-white-bottom": 0x07,
		"ramp":              0x08,
		"white-12":          0x09,
		"white-25":          0x0A,
		"white-65":          0x0B,
	},
	names: map[byte]string{
		0x00: "off",
		0x01: "white-100",
		0x02: "red",
		0x03: "green",
		0x04: "blue",
		0x05: "black",
		0x06: "half-white-top",
		0x07: "half-white-bottom",
		0x08: "ramp",
		0x09: "white-12",
		0x0A: "white-25",
		0x0B: "white-65",
	},
}

var RemoteLock = &Domain{
	name: "remote lock state",
	codes: map[string]byte{
		"unlock-all":                   0x01,
		"lock-all":                     0x02,
		"lock-all-but-power":           0x03,
		"lock-all-but-volume":          0x04,
		"primary":                      0x05,
		"secondary":                    0x06,
		"lock-all-except-power-volume": 0x07,
	},
	names: map[byte]string{
		0x01: "unlock-all",
		0x02: "lock-all",
		0x03: "lock-all-but-power",
		0x04: "lock-all-but-volume",
		0x05: "primary",
		0x06: "secondary",
		0x07: "lock-all-except-power-volume",
	},
}

// RemoteKey covers infrared remote key codes for simulation. The alias set
// is wide because people type volume keys every way imaginable.
var RemoteKey = &Domain{
	name: "remote key",
	codes: map[string]byte{
		"key-0":         0x00,
		"0":             0x00,
		"key-1":         0x01,
		"1":             0x01,
		"key-2":         0x02,
		"2":             0x02,
		"key-3":         0x03,
		"3":             0x03,
		"key-4":         0x04,
		"4":             0x04,
		"key-5":         0x05,
		"5":             0x05,
		"key-6":         0x06,
		"6":             0x06,
		"key-7":         0x07,
		"7":             0x07,
		"key-8":         0x08,
		"8":             0x08,
		"key-9":         0x09,
		"9":             0x09,
		"back":          0x0A,
		"mute":          0x0D,
		"info":          0x0F,
		"vol+":          0x10,
		"vol-plus":      0x10,
		"volume-up":     0x10,
		"volume+":       0x10,
		"volume-plus":   0x10,
		"volumeup":      0x10,
		"volup":         0x10,
		"vol-":          0x11,
		"vol-minus":     0x11,
		"volume-down":   0x11,
		"volume-":       0x11,
		"volume-minus":  0x11,
		"voldown":       0x11,
		"fwd":           0x28,
		"forward":       0x28,
		"rwd":           0x2B,
		"rewind":        0x2B,
		"play":          0x2C,
		"pause":         0x30,
		"stop":          0x31,
		"sources":       0x38,
		"options":       0x40,
		"home":          0x54,
		"arrow-up":      0x58,
		"up":            0x58,
		"arrow-down":    0x59,
		"down":          0x59,
		"arrow-left":    0x5A,
		"left":          0x5A,
		"arrow-right":   0x5B,
		"right":         0x5B,
		"ok":            0x5C,
		"enter":         0x5C,
		"select":        0x5C,
		"red":           0x6D,
		"green":         0x6E,
		"yellow":        0x6F,
		"blue":          0x70,
		"list":          0x8B,
		"adjust":        0x90,
		"power-on":      0xBE,
		"power-off":     0xBF,
		"format":        0xF5,
	},
	names: map[byte]string{
		0x00: "key-0",
		0x01: "key-1",
		0x02: "key-2",
		0x03: "key-3",
		0x04: "key-4",
		0x05: "key-5",
		0x06: "key-6",
		0x07: "key-7",
		0x08: "key-8",
		0x09: "key-9",
		0x0A: "back",
		0x0D: "mute",
		0x0F: "info",
		0x10: "vol+",
		0x11: "vol-",
		0x28: "fwd",
		0x2B: "rwd",
		0x2C: "play",
		0x30: "pause",
		0x31: "stop",
		0x38: "sources",
		0x40: "options",
		0x54: "home",
		0x58: "arrow-up",
		0x59: "arrow-down",
		0x5A: "arrow-left",
		0x5B: "arrow-right",
		0x5C: "ok",
		0x6D: "red",
		0x6E: "green",
		0x6F: "yellow",
		0x70: "blue",
		0x8B: "list",
		0x90: "adjust",
		0xBE: "power-on",
		0xBF: "power-off",
		0xF5: "format",
	},
}

var PowerOnLogo = &Domain{
	name: "power-on logo mode",
	codes: map[string]byte{
		"off":  0x00,
		"on":   0x01,
		"user": 0x02,
	},
	names: map[byte]string{
		0x00: "off",
		0x01: "on",
		0x02: "user",
	},
}

// AutoSignal detection modes. The numeric fallback is capped at the highest
// defined mode because the command rejects anything above failover.
var AutoSignal = &Domain{
	name: "auto signal mode",
	codes: map[string]byte{
		"off":           0x00,
		"all":           0x01,
		"reserved":      0x02,
		"pc-only":       0x03,
		"pc-sources":    0x03,
		"video-only":    0x04,
		"video-sources": 0x04,
		"failover":      0x05,
	},
	names: map[byte]string{
		0x00: "off",
		0x01: "all",
		0x02: "reserved",
		0x03: "pc-only",
		0x04: "video-only",
		0x05: "failover",
	},
	maxCode: 0x05,
}

// ColorTempUser2 is the User 2 preset code, the prerequisite mode for fine
// color temperature adjustment.
const ColorTempUser2 = 0x12

// ColorTemperature maps preset labels to mode codes. Numeric Kelvin
// spellings resolve through normalizeKelvin, so "6500" and "6500K" both hit
// the 6500k preset rather than being treated as raw codes.
var ColorTemperature = &Domain{
	name: "color temperature mode",
	codes: map[string]byte{
		"user1":  0x00,
		"user-1": 0x00,
		"native": 0x01,
		"11000k": 0x02,
		"10000k": 0x03,
		"9300k":  0x04,
		"7500k":  0x05,
		"6500k":  0x06,
		"5770k":  0x07,
		"5500k":  0x08,
		"5000k":  0x09,
		"4000k":  0x0A,
		"3400k":  0x0B,
		"3350k":  0x0C,
		"3000k":  0x0D,
		"2800k":  0x0E,
		"2600k":  0x0F,
		"1850k":  0x10,
		"user2":  0x12,
		"user-2": 0x12,
	},
	names: map[byte]string{
		0x00: "user1",
		0x01: "native",
		0x02: "11000K",
		0x03: "10000K",
		0x04: "9300K",
		0x05: "7500K",
		0x06: "6500K",
		0x07: "5770K",
		0x08: "5500K",
		0x09: "5000K",
		0x0A: "4000K",
		0x0B: "3400K",
		0x0C: "3350K",
		0x0D: "3000K",
		0x0E: "2800K",
		0x0F: "2600K",
		0x10: "1850K",
		0x12: "user2",
	},
	rewrite: normalizeKelvin,
}

var PowerSave = &Domain{
	name: "power save mode",
	codes: map[string]byte{
		"rgb-off-video-off": 0x00,
		"rgb-off-video-on":  0x01,
		"rgb-on-video-off":  0x02,
		"rgb-on-video-on":   0x03,
		"mode-1":            0x04,
		"mode1":             0x04,
		"mode-2":            0x05,
		"mode2":             0x05,
		"mode-3":            0x06,
		"mode3":             0x06,
		"mode-4":            0x07,
		"mode4":             0x07,
	},
	names: map[byte]string{
		0x00: "rgb-off-video-off",
		0x01: "rgb-off-video-on",
		0x02: "rgb-on-video-off",
		0x03: "rgb-on-video-on",
		0x04: "mode1",
		0x05: "mode2",
		0x06: "mode3",
		0x07: "mode4",
	},
}

var SmartPower = &Domain{
	name: "smart power level",
	codes: map[string]byte{
		"off":    0x00,
		"low":    0x01,
		"medium": 0x02,
		"med":    0x02,
		"high":   0x03,
	},
	names: map[byte]string{
		0x00: "off",
		0x01: "low",
		0x02: "medium",
		0x03: "high",
	},
}

// APM is advanced power management: what stays reachable when the panel is
// off. The mode1/mode2 labels carry descriptive aliases naming the actual
// TCP and Wake-on-LAN behavior.
var APM = &Domain{
	name: "APM mode",
	codes: map[string]byte{
		"off":            0x00,
		"on":             0x01,
		"mode1":          0x02,
		"mode-1":         0x02,
		"tcp-off-wol-on": 0x02,
		"mode2":          0x03,
		"mode-2":         0x03,
		"tcp-on-wol-off": 0x03,
	},
	names: map[byte]string{
		0x00: "off",
		0x01: "on",
		0x02: "mode1",
		0x03: "mode2",
	},
}

var ColdStart = &Domain{
	name: "cold start state",
	codes: map[string]byte{
		"power-off":   0x00,
		"forced-on":   0x01,
		"last-status": 0x02,
	},
	names: map[byte]string{
		0x00: "power-off",
		0x01: "forced-on",
		0x02: "last-status",
	},
}

// SICPInfoLabel names the fields of a platform information reply, in
// payload order.
var SICPInfoLabel = &Domain{
	name: "SICP info field",
	codes: map[string]byte{
		"sicp-version":          0x00,
		"platform-label":        0x01,
		"platform-version":      0x02,
		"custom-intent-version": 0x03,
	},
	names: map[byte]string{
		0x00: "sicp-version",
		0x01: "platform-label",
		0x02: "platform-version",
		0x03: "custom-intent-version",
	},
}

// ModelInfoLabel names the fields a model information query can address.
var ModelInfoLabel = &Domain{
	name: "model info field",
	codes: map[string]byte{
		"model-number":         0x00,
		"firmware-version":     0x01,
		"build-date":           0x02,
		"android-firmware":     0x03,
		"hdmi-switch-version":  0x04,
		"lan-firmware":         0x05,
		"hdmi-switch2-version": 0x06,
	},
	names: map[byte]string{
		0x00: "model-number",
		0x01: "firmware-version",
		0x02: "build-date",
		0x03: "android-firmware",
		0x04: "hdmi-switch-version",
		0x05: "lan-firmware",
		0x06: "hdmi-switch2-version",
	},
}

var IPParameter = &Domain{
	name: "IP parameter",
	codes: map[string]byte{
		"ip":       0x01,
		"subnet":   0x02,
		"gateway":  0x03,
		"dns1":     0x04,
		"dns2":     0x05,
		"eth-mac":  0x06,
		"wifi-mac": 0x07,
	},
	names: map[byte]string{
		0x01: "ip",
		0x02: "subnet",
		0x03: "gateway",
		0x04: "dns1",
		0x05: "dns2",
		0x06: "eth-mac",
		0x07: "wifi-mac",
	},
}

var IPValueType = &Domain{
	name: "IP value type",
	codes: map[string]byte{
		"current": 0x01,
		"queued":  0x02,
	},
	names: map[byte]string{
		0x01: "current",
		0x02: "queued",
	},
}

package display

import (
	"github.com/tidworth/sicp/internal/protocol"
)

// IPParameterValue is a decoded IP configuration reply
type IPParameterValue struct {
	// Parameter is the parameter code the display reported back
	Parameter byte

	// ValueType distinguishes the running value from one queued for the
	// next restart
	ValueType byte

	// Formatted is the rendered value: a dotted quad for addresses, a
	// colon-separated MAC, or best-effort text
	Formatted string

	// ASCII holds the printable characters of the raw value
	ASCII string

	// Hex holds the complete raw value as uppercase hex
	Hex string
}

// GetTemperatures reads the onboard temperature sensors in Celsius. Unused
// sensor slots report 0xFF and are filtered out; a display with no usable
// sensors yields a nil slice without error.
func (c *Client) GetTemperatures() ([]int, error) {
	payload, err := c.get(protocol.CmdTemperatureGet)
	if err != nil {
		return nil, err
	}
	var temps []int
	for _, v := range payload {
		if v == protocol.TemperatureAbsent {
			continue
		}
		temps = append(temps, int(v))
	}
	return temps, nil
}

// GetSerialNumber fetches the display serial number. Padding and control
// bytes are stripped, so a display that reports nothing useful yields an
// empty string.
func (c *Client) GetSerialNumber() (string, error) {
	payload, err := c.get(protocol.CmdSerialGet)
	if err != nil {
		return "", err
	}
	return printableASCII(payload), nil
}

// GetModelInfo fetches one model information field. Field codes come from
// protocol.ModelInfoLabel (model number, firmware version, build date).
func (c *Client) GetModelInfo(field byte) (string, error) {
	payload, err := c.get(protocol.CmdModelInfoGet, field)
	if err != nil {
		return "", err
	}
	return printableASCII(payload), nil
}

// GetSICPInfo fetches one protocol implementation field. Field codes come
// from protocol.SICPInfoLabel (SICP version, platform label and version).
func (c *Client) GetSICPInfo(field byte) (string, error) {
	payload, err := c.get(protocol.CmdSICPInfoGet, field)
	if err != nil {
		return "", err
	}
	return printableASCII(payload), nil
}

// GetIPParameter reads one network configuration value, either the current
// one or the value queued for the next restart. Parameter and value type
// codes come from protocol.IPParameter and protocol.IPValueType.
func (c *Client) GetIPParameter(parameter, valueType byte) (IPParameterValue, error) {
	payload, err := c.get(protocol.CmdIPParameterGet, parameter, valueType)
	if err != nil {
		return IPParameterValue{}, err
	}
	if len(payload) < 2 {
		return IPParameterValue{}, NewMalformedError(protocol.CmdIPParameterGet,
			"IP parameter reply missing parameter and type bytes")
	}
	// the display echoes which parameter it actually answered; format by
	// that, not by what was asked
	v := IPParameterValue{Parameter: payload[0], ValueType: payload[1]}
	v.Formatted, v.ASCII, v.Hex = formatIPValue(v.Parameter, payload[2:])
	return v, nil
}

package protocol

import (
	"bytes"
	"testing"
)

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name      string
		monitorID byte
		command   byte
		params    []byte
		want      []byte
	}{
		{
			name:      "power on",
			monitorID: 1,
			command:   CmdPowerStateSet,
			params:    []byte{PowerOn},
			want: []byte{
				0x06, // size
				0x01, // monitor ID
				0x00, // group
				0x18, // power state set
				0x02, // on
				0x1D, // checksum
			},
		},
		{
			name:      "power state get, no params",
			monitorID: 1,
			command:   CmdPowerStateGet,
			want: []byte{
				0x05, // size
				0x01, // monitor ID
				0x00, // group
				0x19, // power state get
				0x1D, // checksum
			},
		},
		{
			name:      "broadcast monitor ID",
			monitorID: MonitorBroadcast,
			command:   CmdVolumeGet,
			want: []byte{
				0x05, 0x00, 0x00, 0x45, 0x40,
			},
		},
		{
			name:      "input source with four params",
			monitorID: 2,
			command:   CmdInputSourceSet,
			params:    []byte{0x0D, 0x00, 0x01, 0x00}, // hdmi1, playlist 0, OSD on
			want: []byte{
				0x09, 0x02, 0x00, 0xAC, 0x0D, 0x00, 0x01, 0x00, 0xAB,
			},
		},
		{
			name:      "video parameters, seven params",
			monitorID: 1,
			command:   CmdVideoParametersSet,
			params:    []byte{50, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			want: []byte{
				0x0C, 0x01, 0x00, 0x32, 0x32, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x0D,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRequest(tt.monitorID, tt.command, tt.params...)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("BuildRequest() = % 02X, want % 02X", got, tt.want)
			}
		})
	}
}

func TestBuildRequest_FrameLayout(t *testing.T) {
	t.Run("size field matches length", func(t *testing.T) {
		for nParams := 0; nParams <= 8; nParams++ {
			params := make([]byte, nParams)
			frame := BuildRequest(1, CmdVolumeSet, params...)
			if int(frame[OffsetSize]) != len(frame) {
				t.Errorf("%d params: size field = %d, frame length = %d", nParams, frame[OffsetSize], len(frame))
			}
			if len(frame) != MinFrameSize+nParams {
				t.Errorf("%d params: frame length = %d, want %d", nParams, len(frame), MinFrameSize+nParams)
			}
		}
	})

	t.Run("checksum covers all preceding bytes", func(t *testing.T) {
		frame := BuildRequest(3, CmdBacklightSet, BacklightOff)
		sum := Checksum(frame[:len(frame)-1])
		if frame[len(frame)-1] != sum {
			t.Errorf("trailing byte = 0x%02X, computed checksum = 0x%02X", frame[len(frame)-1], sum)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := BuildRequest(1, CmdTemperatureGet)
		b := BuildRequest(1, CmdTemperatureGet)
		if !bytes.Equal(a, b) {
			t.Errorf("same inputs produced %v and %v", a, b)
		}
	})

	t.Run("validates against ValidateFrame", func(t *testing.T) {
		frame := BuildRequest(1, CmdMuteSet, 0x01)
		if err := ValidateFrame(frame); err != nil {
			t.Errorf("ValidateFrame() on built frame: %v", err)
		}
	})
}

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want byte
	}{
		{"empty", nil, 0x00},
		{"single byte", []byte{0x5A}, 0x5A},
		{"self-cancelling pair", []byte{0x42, 0x42}, 0x00},
		{"power on header", []byte{0x06, 0x01, 0x00, 0x18, 0x02}, 0x1D},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum(% 02X) = 0x%02X, want 0x%02X", tt.data, got, tt.want)
			}
		})
	}
}

func TestValidateFrame(t *testing.T) {
	valid := BuildRequest(1, CmdPowerStateSet, PowerOn)

	tests := []struct {
		name    string
		frame   []byte
		wantErr bool
	}{
		{"valid frame", valid, false},
		{"too short", []byte{0x04, 0x01, 0x00, 0x05}, true},
		{"empty", nil, true},
		{
			name: "size field lies",
			frame: func() []byte {
				f := BuildRequest(1, CmdPowerStateSet, PowerOn)
				bad := make([]byte, len(f))
				copy(bad, f)
				bad[OffsetSize] = 0x09
				return bad
			}(),
			wantErr: true,
		},
		{
			name: "corrupt checksum",
			frame: func() []byte {
				f := BuildRequest(1, CmdPowerStateSet, PowerOn)
				bad := make([]byte, len(f))
				copy(bad, f)
				bad[len(bad)-1] ^= 0xFF
				return bad
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFrame(tt.frame)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFrame() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommandName(t *testing.T) {
	tests := []struct {
		command byte
		want    string
	}{
		{CmdPowerStateSet, "PowerStateSet"},
		{CmdPowerStateGet, "PowerStateGet"},
		{CmdVolumeSet, "VolumeSet"},
		{CmdTemperatureGet, "TemperatureGet"},
		{CmdRemoteControlSim, "RemoteControlSim"},
		{0xEE, "Unknown(0xEE)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := CommandName(tt.command); got != tt.want {
				t.Errorf("CommandName(0x%02X) = %q, want %q", tt.command, got, tt.want)
			}
		})
	}
}

// Benchmark tests
func BenchmarkBuildRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		BuildRequest(1, CmdVideoParametersSet, 50, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
	}
}

func BenchmarkChecksum(b *testing.B) {
	frame := BuildRequest(1, CmdVideoParametersSet, 50, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Checksum(frame)
	}
}

package display

import (
	"reflect"
	"testing"
)

func TestGetTemperatures(t *testing.T) {
	tests := []struct {
		name  string
		reply []byte
		want  []int
	}{
		{"two sensors", dataReply(0x2F, 45, 38), []int{45, 38}},
		{"unused slot filtered", dataReply(0x2F, 45, 0xFF, 38), []int{45, 38}},
		{"all slots unused", dataReply(0x2F, 0xFF, 0xFF), nil},
		{"echoed opcode stripped", dataReply(0x2F, 0x2F, 45), []int{45}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newFakeClient(scripted{reply: tt.reply})
			got, err := client.GetTemperatures()
			if err != nil {
				t.Fatalf("GetTemperatures() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GetTemperatures() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSerialNumber(t *testing.T) {
	// serial replies pad to a fixed width with NUL bytes
	payload := append([]byte("FZ1A2345678901"), 0x00, 0x00)
	client, _ := newFakeClient(scripted{reply: dataReply(0x15, payload...)})

	serial, err := client.GetSerialNumber()
	if err != nil {
		t.Fatalf("GetSerialNumber() error = %v", err)
	}
	if serial != "FZ1A2345678901" {
		t.Errorf("GetSerialNumber() = %q, want FZ1A2345678901", serial)
	}
}

func TestGetModelInfo(t *testing.T) {
	client, ft := newFakeClient(scripted{reply: dataReply(0xA1, []byte("65BDL4150D/00")...)})

	model, err := client.GetModelInfo(0x00)
	if err != nil {
		t.Fatalf("GetModelInfo() error = %v", err)
	}
	if model != "65BDL4150D/00" {
		t.Errorf("GetModelInfo() = %q, want 65BDL4150D/00", model)
	}

	// the field code travels as the single request parameter
	if ft.sent[0][3] != 0xA1 || ft.sent[0][4] != 0x00 {
		t.Errorf("frame = % X, want command 0xA1 param 0x00", ft.sent[0])
	}
}

func TestGetIPParameter(t *testing.T) {
	tests := []struct {
		name          string
		reply         []byte
		wantFormatted string
		wantParam     byte
	}{
		{
			name:          "ip address as ascii digits",
			reply:         dataReply(0x82, append([]byte{0x01, 0x00}, []byte("192168001050")...)...),
			wantFormatted: "192.168.1.50",
			wantParam:     0x01,
		},
		{
			name:          "mac as raw bytes",
			reply:         dataReply(0x82, 0x06, 0x00, 0xC4, 0xBE, 0x84, 0x74, 0x86, 0x37),
			wantFormatted: "C4:BE:84:74:86:37",
			wantParam:     0x06,
		},
		{
			name:          "echoed opcode stripped",
			reply:         dataReply(0x82, append([]byte{0x82, 0x01, 0x00}, []byte("010000000138")...)...),
			wantFormatted: "10.0.0.138",
			wantParam:     0x01,
		},
		{
			name:          "empty value",
			reply:         dataReply(0x82, 0x02, 0x00),
			wantFormatted: "(no data)",
			wantParam:     0x02,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newFakeClient(scripted{reply: tt.reply})
			got, err := client.GetIPParameter(tt.wantParam, 0x00)
			if err != nil {
				t.Fatalf("GetIPParameter() error = %v", err)
			}
			if got.Formatted != tt.wantFormatted {
				t.Errorf("Formatted = %q, want %q", got.Formatted, tt.wantFormatted)
			}
			if got.Parameter != tt.wantParam {
				t.Errorf("Parameter = 0x%02X, want 0x%02X", got.Parameter, tt.wantParam)
			}
		})
	}
}

func TestGetIPParameter_ShortReply(t *testing.T) {
	client, _ := newFakeClient(scripted{reply: dataReply(0x82, 0x01)})

	_, err := client.GetIPParameter(0x01, 0x00)
	if err == nil || !IsMalformedError(err) {
		t.Fatalf("GetIPParameter() error = %v, want malformed error", err)
	}
}

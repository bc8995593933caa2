package display

import (
	"testing"
)

func TestGetPower(t *testing.T) {
	tests := []struct {
		name    string
		state   byte
		want    bool
		wantErr bool
	}{
		{"on code", 0x02, true, false},
		{"off code", 0x01, false, false},
		{"unknown code is malformed", 0x05, false, true},
		{"zero is malformed", 0x00, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newFakeClient(scripted{reply: dataReply(0x19, tt.state)})
			got, err := client.GetPower()
			if tt.wantErr {
				if err == nil {
					t.Fatal("GetPower() error = nil, want malformed error")
				}
				if !IsMalformedError(err) {
					t.Errorf("IsMalformedError(%v) = false, want true", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetPower() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetPower() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetPower_Params(t *testing.T) {
	client, ft := newFakeClient(scripted{reply: ackReply()}, scripted{reply: ackReply()})

	client.SetPower(true)
	client.SetPower(false)

	if got := ft.sent[0][4]; got != 0x02 {
		t.Errorf("power on param = 0x%02X, want 0x02", got)
	}
	if got := ft.sent[1][4]; got != 0x01 {
		t.Errorf("power off param = 0x%02X, want 0x01", got)
	}
}

// Backlight encoding is inverted relative to power state: 0x00 means on.
func TestBacklight_InvertedEncoding(t *testing.T) {
	client, ft := newFakeClient(
		scripted{reply: ackReply()},
		scripted{reply: ackReply()},
		scripted{reply: dataReply(0x71, 0x00)},
		scripted{reply: dataReply(0x71, 0x01)},
	)

	client.SetBacklight(true)
	client.SetBacklight(false)

	if got := ft.sent[0][4]; got != 0x00 {
		t.Errorf("backlight on param = 0x%02X, want 0x00", got)
	}
	if got := ft.sent[1][4]; got != 0x01 {
		t.Errorf("backlight off param = 0x%02X, want 0x01", got)
	}

	on, err := client.GetBacklight()
	if err != nil {
		t.Fatalf("GetBacklight() error = %v", err)
	}
	if !on {
		t.Error("GetBacklight() = false for 0x00, want true")
	}

	on, err = client.GetBacklight()
	if err != nil {
		t.Fatalf("GetBacklight() error = %v", err)
	}
	if on {
		t.Error("GetBacklight() = true for 0x01, want false")
	}
}

func TestSetAutoSignalMode_Validation(t *testing.T) {
	client, ft := newFakeClient(scripted{reply: ackReply()})

	ok, err := client.SetAutoSignalMode(6)
	if ok || err == nil {
		t.Fatal("SetAutoSignalMode(6) should fail validation")
	}
	if !IsValidationError(err) {
		t.Errorf("IsValidationError(%v) = false, want true", err)
	}
	if len(ft.sent) != 0 {
		t.Errorf("validation failure sent %d frames, want 0", len(ft.sent))
	}

	if _, err := client.SetAutoSignalMode(5); err != nil {
		t.Errorf("SetAutoSignalMode(5) error = %v, want nil", err)
	}
}

func TestGetWakeOnLAN(t *testing.T) {
	client, _ := newFakeClient(
		scripted{reply: dataReply(0x9C, 0x01)},
		scripted{reply: dataReply(0x9C, 0x00)},
	)

	enabled, err := client.GetWakeOnLAN()
	if err != nil {
		t.Fatalf("GetWakeOnLAN() error = %v", err)
	}
	if !enabled {
		t.Error("GetWakeOnLAN() = false for 0x01, want true")
	}

	enabled, err = client.GetWakeOnLAN()
	if err != nil {
		t.Fatalf("GetWakeOnLAN() error = %v", err)
	}
	if enabled {
		t.Error("GetWakeOnLAN() = true for 0x00, want false")
	}
}

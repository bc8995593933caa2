package display

import (
	"testing"
)

func TestSetMonitorID(t *testing.T) {
	client, ft := newFakeClient(
		scripted{reply: ackReply()},
		scripted{reply: ackReply()},
	)

	ok, err := client.SetMonitorID(5)
	if err != nil {
		t.Fatalf("SetMonitorID() error = %v", err)
	}
	if !ok {
		t.Fatal("SetMonitorID() = false, want true")
	}

	// the reassignment frame goes out addressed to the old ID
	if ft.sent[0][1] != 0x01 {
		t.Errorf("reassignment addressed to ID %d, want 1", ft.sent[0][1])
	}
	if ft.sent[0][3] != 0x69 || ft.sent[0][4] != 0x05 {
		t.Errorf("frame = % X, want command 0x69 param 0x05", ft.sent[0])
	}

	// the client follows the display to the new ID
	if client.DeviceID() != 5 {
		t.Errorf("DeviceID() = %d, want 5 after ack", client.DeviceID())
	}
	client.SetPower(true)
	if ft.sent[1][1] != 0x05 {
		t.Errorf("next frame addressed to ID %d, want 5", ft.sent[1][1])
	}
}

func TestSetMonitorID_RefusedKeepsID(t *testing.T) {
	client, _ := newFakeClient(scripted{reply: navReply()})

	ok, err := client.SetMonitorID(5)
	if err != nil {
		t.Fatalf("SetMonitorID() error = %v", err)
	}
	if ok {
		t.Error("SetMonitorID() = true, want false on NAV")
	}
	if client.DeviceID() != 1 {
		t.Errorf("DeviceID() = %d, want 1 unchanged after refusal", client.DeviceID())
	}
}

func TestSetMonitorID_Validation(t *testing.T) {
	client, ft := newFakeClient()

	_, err := client.SetMonitorID(0)
	if err == nil || !IsValidationError(err) {
		t.Fatalf("SetMonitorID(0) error = %v, want validation error", err)
	}
	if len(ft.sent) != 0 {
		t.Errorf("validation failure sent %d frames, want 0", len(ft.sent))
	}
}

func TestSetGroupID(t *testing.T) {
	tests := []struct {
		name    string
		group   byte
		wantErr bool
	}{
		{"lowest group", 1, false},
		{"highest group", 0xFE, false},
		{"group off sentinel", GroupOff, false},
		{"zero is invalid", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, ft := newFakeClient(scripted{reply: ackReply()})
			_, err := client.SetGroupID(tt.group)
			if tt.wantErr {
				if err == nil || !IsValidationError(err) {
					t.Fatalf("SetGroupID(%d) error = %v, want validation error", tt.group, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetGroupID(%d) error = %v", tt.group, err)
			}
			if ft.sent[0][4] != tt.group {
				t.Errorf("group param = 0x%02X, want 0x%02X", ft.sent[0][4], tt.group)
			}
		})
	}
}

func TestSetOSDTimeout(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		wantErr bool
	}{
		{"disabled", 0, false},
		{"maximum", 60, false},
		{"negative", -1, true},
		{"above maximum", 61, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, ft := newFakeClient(scripted{reply: ackReply()})
			_, err := client.SetOSDTimeout(tt.seconds)
			if tt.wantErr {
				if err == nil || !IsValidationError(err) {
					t.Fatalf("SetOSDTimeout(%d) error = %v, want validation error", tt.seconds, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetOSDTimeout(%d) error = %v", tt.seconds, err)
			}
			if ft.sent[0][4] != byte(tt.seconds) {
				t.Errorf("timeout param = 0x%02X, want 0x%02X", ft.sent[0][4], byte(tt.seconds))
			}
		})
	}
}

func TestSimulateRemoteKey(t *testing.T) {
	client, ft := newFakeClient(scripted{reply: ackReply()})

	ok, err := client.SimulateRemoteKey(0xBE) // power on
	if err != nil {
		t.Fatalf("SimulateRemoteKey() error = %v", err)
	}
	if !ok {
		t.Error("SimulateRemoteKey() = false, want true")
	}

	frame := ft.sent[0]
	if frame[0] != 0x07 || frame[3] != 0xFE {
		t.Fatalf("frame = % X, want size 0x07 command 0xFE", frame)
	}
	if frame[4] != 0xBE || frame[5] != 0x00 {
		t.Errorf("params = [0x%02X 0x%02X], want [0xBE 0x00]", frame[4], frame[5])
	}
}

package bridge

import (
	"sync"
	"testing"
	"time"

	"github.com/tidworth/sicp/internal/config"
	"github.com/tidworth/sicp/internal/display"
)

// fakeController records engine calls without touching the network
type fakeController struct {
	mu          sync.Mutex
	powerCalls  []bool
	volumeCalls []int
	muteCalls   []bool
	inputCalls  []byte
	accepted    bool
	err         error
}

func (f *fakeController) FetchStatus() (*display.Snapshot, error) {
	return &display.Snapshot{}, nil
}

func (f *fakeController) SetPower(on bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.powerCalls = append(f.powerCalls, on)
	return f.accepted, f.err
}

func (f *fakeController) SetVolume(speaker, audioOut *int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if speaker != nil {
		f.volumeCalls = append(f.volumeCalls, *speaker)
	}
	return f.accepted, f.err
}

func (f *fakeController) SetMute(on bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muteCalls = append(f.muteCalls, on)
	return f.accepted, f.err
}

func (f *fakeController) SetInputSource(source, playlist byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputCalls = append(f.inputCalls, source)
	return f.accepted, f.err
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	reg := config.NewRegistry()
	reg.AddDisplay("lobby", &config.Display{Host: "192.168.1.50"})
	reg.AddDisplay("boardroom", &config.Display{Host: "192.168.1.51", MonitorID: 2})

	srv, err := newServer(&Config{PollInterval: time.Hour}, reg)
	if err != nil {
		t.Fatalf("newServer() error = %v", err)
	}
	return srv
}

func TestNewServer(t *testing.T) {
	srv := newTestServer(t)

	if len(srv.resolved) != 2 {
		t.Errorf("resolved displays = %d, want 2", len(srv.resolved))
	}
	if len(srv.clients) != 2 || len(srv.pollers) != 2 {
		t.Errorf("clients/pollers = %d/%d, want 2/2", len(srv.clients), len(srv.pollers))
	}

	// Defaults filled in
	if srv.config.HTTPAddr != DefaultHTTPAddr {
		t.Errorf("HTTPAddr = %v, want %v", srv.config.HTTPAddr, DefaultHTTPAddr)
	}
	if srv.config.MQTTClientID != DefaultMQTTClientID {
		t.Errorf("MQTTClientID = %v, want %v", srv.config.MQTTClientID, DefaultMQTTClientID)
	}

	// MQTT stays off without a broker URL
	if srv.mqtt != nil {
		t.Error("mqtt should be nil without a broker URL")
	}
}

func TestNewServerWithMQTT(t *testing.T) {
	reg := config.NewRegistry()
	reg.AddDisplay("lobby", &config.Display{Host: "192.168.1.50"})

	srv, err := newServer(&Config{MQTTBroker: "tcp://broker.local:1883"}, reg)
	if err != nil {
		t.Fatalf("newServer() error = %v", err)
	}

	if srv.mqtt == nil {
		t.Error("mqtt should be configured when a broker URL is given")
	}
}

func TestNewServerRequiresDisplays(t *testing.T) {
	if _, err := newServer(&Config{}, config.NewRegistry()); err == nil {
		t.Error("newServer() error = nil with empty registry, want error")
	}
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		name        string
		operation   string
		payload     string
		wantPower   []bool
		wantVolume  []int
		wantMute    []bool
		wantInput   []byte
		wantRefresh bool
	}{
		{"power on", "power", "on", []bool{true}, nil, nil, nil, true},
		{"power off", "power", "off", []bool{false}, nil, nil, nil, true},
		{"power numeric", "power", "1", []bool{true}, nil, nil, nil, true},
		{"power invalid", "power", "sideways", nil, nil, nil, nil, false},
		{"volume", "volume", "42", nil, []int{42}, nil, nil, true},
		{"volume padded", "volume", " 17 ", nil, []int{17}, nil, nil, true},
		{"volume invalid", "volume", "loud", nil, nil, nil, nil, false},
		{"mute", "mute", "on", nil, nil, []bool{true}, nil, true},
		{"input alias", "input", "hdmi1", nil, nil, nil, []byte{0x0D}, true},
		{"input invalid", "input", "betamax", nil, nil, nil, nil, false},
		{"wake without mac", "wake", "", nil, nil, nil, nil, false},
		{"unknown operation", "lasers", "pew", nil, nil, nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			fake := &fakeController{accepted: true}
			srv.clients["lobby"] = fake

			srv.handleCommand("lobby", tt.operation, tt.payload)

			fake.mu.Lock()
			defer fake.mu.Unlock()

			if !boolsEqual(fake.powerCalls, tt.wantPower) {
				t.Errorf("power calls = %v, want %v", fake.powerCalls, tt.wantPower)
			}
			if !intsEqual(fake.volumeCalls, tt.wantVolume) {
				t.Errorf("volume calls = %v, want %v", fake.volumeCalls, tt.wantVolume)
			}
			if !boolsEqual(fake.muteCalls, tt.wantMute) {
				t.Errorf("mute calls = %v, want %v", fake.muteCalls, tt.wantMute)
			}
			if !bytesEqualSlice(fake.inputCalls, tt.wantInput) {
				t.Errorf("input calls = %v, want %v", fake.inputCalls, tt.wantInput)
			}

			// A dispatched command schedules an immediate poll
			kicked := len(srv.pollers["lobby"].kick) == 1
			if kicked != tt.wantRefresh {
				t.Errorf("refresh scheduled = %v, want %v", kicked, tt.wantRefresh)
			}
		})
	}
}

func TestHandleCommandUnknownDisplay(t *testing.T) {
	srv := newTestServer(t)
	fake := &fakeController{accepted: true}
	srv.clients["lobby"] = fake

	srv.handleCommand("rooftop", "power", "on")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.powerCalls) != 0 {
		t.Error("command for unknown display should not reach any client")
	}
}

func TestParseOnOff(t *testing.T) {
	tests := []struct {
		payload string
		want    bool
		wantErr bool
	}{
		{"on", true, false},
		{"ON", true, false},
		{"1", true, false},
		{"true", true, false},
		{"off", false, false},
		{"0", false, false},
		{"false", false, false},
		{" on ", true, false},
		{"standby", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		got, err := parseOnOff(tt.payload)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseOnOff(%q) error = %v, wantErr %v", tt.payload, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseOnOff(%q) = %v, want %v", tt.payload, got, tt.want)
		}
	}
}

// Slice comparison helpers (nil and empty compare equal)

func boolsEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func bytesEqualSlice(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package config

import (
	"fmt"
	"sort"
	"time"
)

// Registry represents the entire display registry file.
// It maps operator-chosen names to display addresses so commands can say
// "lobby" instead of repeating host, port and monitor ID every time.
type Registry struct {
	Version  int                 `yaml:"version"`
	Displays map[string]*Display `yaml:"displays,omitempty"` // Keyed by display name
	Defaults *Defaults           `yaml:"defaults,omitempty"`
}

// Display is one configured display. Zero-valued fields inherit from the
// registry's Defaults block when resolved.
type Display struct {
	Host         string `yaml:"host,omitempty"`          // IP or hostname for TCP control
	Port         int    `yaml:"port,omitempty"`          // SICP TCP port (default 5000)
	MonitorID    int    `yaml:"monitor_id,omitempty"`    // 1-255; 0 falls back to the default
	SerialDevice string `yaml:"serial_device,omitempty"` // RS-232 path; overrides TCP when set
	MAC          string `yaml:"mac,omitempty"`           // Hardware address for Wake-on-LAN

	// Timeouts are in seconds and may be fractional.
	ConnectTimeout float64 `yaml:"connect_timeout,omitempty"`
	ReceiveTimeout float64 `yaml:"receive_timeout,omitempty"`
}

// Defaults applies to every display that does not override a field.
type Defaults struct {
	Port           int     `yaml:"port"`
	MonitorID      int     `yaml:"monitor_id"`
	ConnectTimeout float64 `yaml:"connect_timeout"`
	ReceiveTimeout float64 `yaml:"receive_timeout"`
}

// Resolved is a display entry merged with the registry defaults, with
// timeouts converted to durations. This is the shape the command layer
// hands to the engine.
type Resolved struct {
	Name           string
	Host           string
	Port           int
	MonitorID      byte
	SerialDevice   string
	MAC            string
	ConnectTimeout time.Duration
	ReceiveTimeout time.Duration
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Displays: make(map[string]*Display),
		Defaults: &Defaults{
			Port:           5000,
			MonitorID:      1,
			ConnectTimeout: 2.0,
			ReceiveTimeout: 2.0,
		},
	}
}

// GetDisplay retrieves a display entry by name.
// Returns nil if the name is not configured.
func (r *Registry) GetDisplay(name string) *Display {
	return r.Displays[name]
}

// AddDisplay adds or replaces a display entry.
func (r *Registry) AddDisplay(name string, display *Display) {
	if r.Displays == nil {
		r.Displays = make(map[string]*Display)
	}
	r.Displays[name] = display
}

// RemoveDisplay deletes a display entry.
// Returns false if the name was not configured.
func (r *Registry) RemoveDisplay(name string) bool {
	if _, exists := r.Displays[name]; !exists {
		return false
	}
	delete(r.Displays, name)
	return true
}

// Names returns the configured display names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Displays))
	for name := range r.Displays {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve merges a named display with the registry defaults and validates
// the result. A display needs either a host or a serial device, and its
// monitor ID must fit in a byte (0 is the broadcast address).
func (r *Registry) Resolve(name string) (*Resolved, error) {
	display := r.GetDisplay(name)
	if display == nil {
		return nil, fmt.Errorf("display %q is not configured (run 'sicpctl displays' to list names)", name)
	}

	defaults := r.Defaults
	if defaults == nil {
		defaults = NewRegistry().Defaults
	}

	resolved := &Resolved{
		Name:           name,
		Host:           display.Host,
		Port:           display.Port,
		MonitorID:      0,
		SerialDevice:   display.SerialDevice,
		MAC:            display.MAC,
		ConnectTimeout: secondsToDuration(display.ConnectTimeout, defaults.ConnectTimeout),
		ReceiveTimeout: secondsToDuration(display.ReceiveTimeout, defaults.ReceiveTimeout),
	}

	if resolved.Port == 0 {
		resolved.Port = defaults.Port
	}

	id := display.MonitorID
	if id == 0 {
		id = defaults.MonitorID
	}
	if id < 0 || id > 255 {
		return nil, fmt.Errorf("display %q has monitor ID %d, must be between 0 and 255", name, id)
	}
	resolved.MonitorID = byte(id)

	if resolved.Host == "" && resolved.SerialDevice == "" {
		return nil, fmt.Errorf("display %q has neither a host nor a serial device", name)
	}

	return resolved, nil
}

// ResolveAll resolves every configured display, sorted by name.
// The first invalid entry aborts the whole resolution so a fan-out
// command never silently skips a misconfigured display.
func (r *Registry) ResolveAll() ([]*Resolved, error) {
	names := r.Names()
	resolved := make([]*Resolved, 0, len(names))
	for _, name := range names {
		res, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, res)
	}
	return resolved, nil
}

func secondsToDuration(value, fallback float64) time.Duration {
	if value <= 0 {
		value = fallback
	}
	if value <= 0 {
		value = 2.0
	}
	return time.Duration(value * float64(time.Second))
}

// Package config manages the display registry for the SICP tools.
//
// This package manages a YAML file that maps operator-chosen names to
// display addresses, so commands can target "lobby" instead of repeating
// host, port and monitor ID every time. A defaults block fills in fields
// an entry leaves out. The file location follows OS conventions.
//
// # Registry File Location
//
// The registry file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/sicp/displays.yaml or $HOME/.config/sicp/displays.yaml
//   - macOS: $HOME/.config/sicp/displays.yaml
//   - Windows: %LOCALAPPDATA%\sicp\displays.yaml
//
// # File Format
//
//	version: 1
//	displays:
//	  lobby:
//	    host: 192.168.1.50
//	    monitor_id: 1
//	    mac: C4:BE:84:74:86:37
//	  boardroom:
//	    serial_device: /dev/ttyUSB0
//	defaults:
//	  port: 5000
//	  monitor_id: 1
//	  connect_timeout: 2.0
//	  receive_timeout: 2.0
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resolved, err := registry.Resolve("lobby")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := display.NewClient(resolved.Host, resolved.MonitorID)
//
//	// Register a new display and save atomically
//	registry.AddDisplay("cafe", &config.Display{Host: "192.168.1.60"})
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config

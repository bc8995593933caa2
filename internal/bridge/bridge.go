package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
	"github.com/tidworth/sicp/internal/config"
	"github.com/tidworth/sicp/internal/display"
	"github.com/tidworth/sicp/internal/logging"
	"github.com/tidworth/sicp/internal/protocol"
	"github.com/tidworth/sicp/internal/wol"
	"go.uber.org/zap"
)

const (
	// DefaultHTTPAddr is where the bridge serves /health, /displays and /ws/state
	DefaultHTTPAddr = ":8380"

	// DefaultMQTTClientID identifies the bridge to the broker
	DefaultMQTTClientID = "sicp-bridge"

	mdnsService = "_sicp-bridge._tcp"
	mdnsDomain  = "local."
)

// Config holds the bridge configuration
type Config struct {
	HTTPAddr     string        // Listen address for the HTTP/WebSocket surface
	PollInterval time.Duration // Snapshot refresh interval per display
	MQTTBroker   string        // Broker URL (e.g. "tcp://broker.local:1883"); empty disables MQTT
	MQTTClientID string
	EnableMDNS   bool // Announce the bridge over mDNS
	LogLevel     string
}

// Controller is the slice of the engine the bridge drives.
// *display.Client implements it; tests substitute fakes.
type Controller interface {
	FetchStatus() (*display.Snapshot, error)
	SetPower(on bool) (bool, error)
	SetVolume(speaker, audioOut *int) (bool, error)
	SetMute(on bool) (bool, error)
	SetInputSource(source, playlist byte) (bool, error)
}

// Server is the bridge daemon: per-display pollers feeding a WebSocket
// hub and an optional MQTT publisher, plus inbound command dispatch.
type Server struct {
	config   *Config
	resolved []*config.Resolved
	clients  map[string]Controller
	macs     map[string]string
	pollers  map[string]*Poller
	updates  chan Update
	hub      *Hub
	mqtt     *MQTTClient
	mdns     *zeroconf.Server
	httpSrv  *http.Server
	upgrader websocket.Upgrader

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a bridge server covering every display in the registry
func New(cfg *Config) (*Server, error) {
	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load display registry: %w", err)
	}

	return newServer(cfg, registry)
}

func newServer(cfg *Config, registry *config.Registry) (*Server, error) {
	resolved, err := registry.ResolveAll()
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		return nil, fmt.Errorf("no displays configured; add entries to the registry first")
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = DefaultHTTPAddr
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.MQTTClientID == "" {
		cfg.MQTTClientID = DefaultMQTTClientID
	}

	s := &Server{
		config:   cfg,
		resolved: resolved,
		clients:  make(map[string]Controller, len(resolved)),
		macs:     make(map[string]string, len(resolved)),
		pollers:  make(map[string]*Poller, len(resolved)),
		updates:  make(chan Update, 64),
		hub:      NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all connections
			},
		},
	}

	for _, res := range resolved {
		client := newController(res)
		s.clients[res.Name] = client
		s.macs[res.Name] = res.MAC
		s.pollers[res.Name] = newPoller(res.Name, client.FetchStatus, cfg.PollInterval, s.updates)
	}

	if cfg.MQTTBroker != "" {
		s.mqtt = NewMQTTClient(cfg.MQTTBroker, cfg.MQTTClientID)
		s.mqtt.SetCommandHandler(s.handleCommand)
	}

	return s, nil
}

// newController builds the engine client for a resolved registry entry
func newController(res *config.Resolved) Controller {
	if res.SerialDevice != "" {
		transport := display.NewSerialTransport(res.SerialDevice)
		transport.ReadTimeout = res.ReceiveTimeout
		return display.NewClientWithTransport(transport, res.MonitorID)
	}

	transport := display.NewTCPTransport(res.Host)
	transport.Port = res.Port
	transport.ConnectTimeout = res.ConnectTimeout
	transport.ReadTimeout = res.ReceiveTimeout
	return display.NewClientWithTransport(transport, res.MonitorID)
}

// Start runs the bridge and blocks until shutdown
func (s *Server) Start() error {
	logging.Info("Starting SICP bridge",
		zap.String("addr", s.config.HTTPAddr),
		zap.Int("displays", len(s.resolved)),
		zap.Duration("poll_interval", s.config.PollInterval),
		zap.Bool("mqtt", s.mqtt != nil),
		zap.Bool("mdns", s.config.EnableMDNS),
	)

	go s.hub.Run()

	s.wg.Add(1)
	go s.forwardUpdates()

	if s.mqtt != nil {
		if err := s.mqtt.Connect(); err != nil {
			return err
		}
	}

	for _, poller := range s.pollers {
		poller.Start()
	}

	if s.config.EnableMDNS {
		if err := s.registerMDNS(); err != nil {
			// Announcement is best-effort; the bridge works without it
			logging.Warn("mDNS registration failed", zap.Error(err))
		}
	}

	s.httpSrv = &http.Server{
		Addr:         s.config.HTTPAddr,
		Handler:      s.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logging.Info("HTTP server listening", zap.String("addr", s.config.HTTPAddr))
		serverErrors <- s.httpSrv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case sig := <-sigChan:
		logging.Info("Shutdown signal received", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	}
}

// registerMDNS announces the bridge's HTTP endpoint
func (s *Server) registerMDNS() error {
	_, portStr, err := net.SplitHostPort(s.config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("cannot derive mDNS port from %q: %w", s.config.HTTPAddr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("cannot derive mDNS port from %q: %w", s.config.HTTPAddr, err)
	}

	txt := []string{"displays=" + strconv.Itoa(len(s.resolved))}
	server, err := zeroconf.Register(s.config.MQTTClientID, mdnsService, mdnsDomain, port, txt, nil)
	if err != nil {
		return err
	}
	s.mdns = server

	logging.Info("Announced bridge over mDNS",
		zap.String("service", mdnsService),
		zap.Int("port", port))
	return nil
}

// forwardUpdates fans poll results out to the WebSocket hub and MQTT
func (s *Server) forwardUpdates() {
	defer s.wg.Done()

	for update := range s.updates {
		msg := StateMessage{
			Type:     "state",
			Display:  update.Display,
			Stale:    update.Stale,
			Snapshot: update.Snapshot,
		}
		if update.Err != nil {
			msg.Error = display.GetShortErrorMessage(update.Err)
		}

		data, err := json.Marshal(msg)
		if err != nil {
			logging.Error("Failed to marshal state message", zap.Error(err))
			continue
		}

		s.hub.Broadcast(data)

		if s.mqtt != nil && s.mqtt.IsConnected() {
			if err := s.mqtt.PublishState(update.Display, data); err != nil {
				logging.Warn("Failed to publish state",
					zap.String("display", update.Display), zap.Error(err))
			}
			if err := s.mqtt.PublishAvailability(update.Display, !update.Stale); err != nil {
				logging.Warn("Failed to publish availability",
					zap.String("display", update.Display), zap.Error(err))
			}
		}
	}
}

// handleCommand executes one inbound command message. Failures are logged
// rather than returned; MQTT has no reply channel.
func (s *Server) handleCommand(displayName, operation, payload string) {
	client, ok := s.clients[displayName]
	if !ok {
		logging.Warn("Command for unknown display",
			zap.String("display", displayName),
			zap.String("operation", operation))
		return
	}

	logging.Info("Dispatching command",
		zap.String("display", displayName),
		zap.String("operation", operation),
		zap.String("payload", payload))

	var (
		accepted bool
		err      error
	)

	switch operation {
	case "power":
		var on bool
		on, err = parseOnOff(payload)
		if err == nil {
			accepted, err = client.SetPower(on)
		}
	case "volume":
		var level int
		level, err = strconv.Atoi(strings.TrimSpace(payload))
		if err != nil {
			err = fmt.Errorf("volume payload must be a number, got %q", payload)
		} else {
			accepted, err = client.SetVolume(&level, nil)
		}
	case "mute":
		var on bool
		on, err = parseOnOff(payload)
		if err == nil {
			accepted, err = client.SetMute(on)
		}
	case "input":
		var code byte
		code, err = protocol.InputSource.Code(payload)
		if err == nil {
			accepted, err = client.SetInputSource(code, 0)
		}
	case "wake":
		mac := s.macs[displayName]
		if mac == "" {
			err = fmt.Errorf("display %s has no MAC address configured", displayName)
		} else {
			err = wol.Wake(mac)
			accepted = err == nil
		}
	default:
		logging.Warn("Unknown command operation",
			zap.String("display", displayName),
			zap.String("operation", operation))
		return
	}

	if err != nil {
		logging.Error("Command failed",
			zap.String("display", displayName),
			zap.String("operation", operation),
			zap.Error(err))
		return
	}
	if !accepted {
		logging.Warn("Display refused command",
			zap.String("display", displayName),
			zap.String("operation", operation))
	}

	// Poll right away so subscribers see the effect of the command
	if poller, ok := s.pollers[displayName]; ok {
		poller.Refresh()
	}
}

func parseOnOff(payload string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(payload)) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", payload)
}

// Shutdown gracefully stops the bridge
func (s *Server) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() {
		logging.Info("Shutting down bridge...")

		// Stop pollers first so nothing feeds the updates channel
		for _, poller := range s.pollers {
			poller.Stop()
		}
		close(s.updates)
		s.wg.Wait()

		// Mark every display offline before dropping the broker
		if s.mqtt != nil {
			if s.mqtt.IsConnected() {
				for _, res := range s.resolved {
					if err := s.mqtt.PublishAvailability(res.Name, false); err != nil {
						logging.Debug("Failed to publish offline availability",
							zap.String("display", res.Name), zap.Error(err))
					}
				}
			}
			s.mqtt.Disconnect()
		}

		if s.mdns != nil {
			s.mdns.Shutdown()
		}

		if s.httpSrv != nil {
			if err := s.httpSrv.Shutdown(ctx); err != nil {
				logging.Warn("HTTP server shutdown error", zap.Error(err))
				_ = s.httpSrv.Close()
			}
		}

		if err := s.hub.Close(); err != nil {
			logging.Warn("Hub close error", zap.Error(err))
		}

		logging.Info("Bridge shutdown complete")
		logging.Sync()
	})
	return nil
}

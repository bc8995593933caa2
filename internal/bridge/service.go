package bridge

import (
	"encoding/json"
	"net/http"

	"github.com/tidworth/sicp/internal/display"
	"github.com/tidworth/sicp/internal/logging"
	"go.uber.org/zap"
)

// StateMessage is one JSON document describing a display's state. It is
// streamed to WebSocket subscribers and published retained to MQTT on
// every poll cycle.
type StateMessage struct {
	Type     string            `json:"type"` // always "state"
	Display  string            `json:"display"`
	Stale    bool              `json:"stale"`
	Error    string            `json:"error,omitempty"`
	Snapshot *display.Snapshot `json:"snapshot"`
}

// DisplayStatus is one row of the /displays listing
type DisplayStatus struct {
	Name         string            `json:"name"`
	Host         string            `json:"host,omitempty"`
	SerialDevice string            `json:"serial_device,omitempty"`
	MonitorID    int               `json:"monitor_id"`
	Stale        bool              `json:"stale"`
	LastError    string            `json:"last_error,omitempty"`
	Snapshot     *display.Snapshot `json:"snapshot"`
}

// Routes builds the bridge's HTTP handler
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/displays", s.displaysHandler)
	mux.HandleFunc("/ws/state", s.websocketHandler)

	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":            "ok",
		"displays":          len(s.pollers),
		"websocket_clients": s.hub.GetClientCount(),
	}
	if s.mqtt != nil {
		status["mqtt_connected"] = s.mqtt.IsConnected()
	}

	writeJSON(w, status)
}

func (s *Server) displaysHandler(w http.ResponseWriter, r *http.Request) {
	rows := make([]DisplayStatus, 0, len(s.resolved))
	for _, res := range s.resolved {
		row := DisplayStatus{
			Name:         res.Name,
			Host:         res.Host,
			SerialDevice: res.SerialDevice,
			MonitorID:    int(res.MonitorID),
		}
		if poller, ok := s.pollers[res.Name]; ok {
			snap, stale, lastErr := poller.Status()
			row.Snapshot = snap
			row.Stale = stale
			if lastErr != nil {
				row.LastError = display.GetShortErrorMessage(lastErr)
			}
		}
		rows = append(rows, row)
	}

	writeJSON(w, rows)
}

func (s *Server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("Failed to upgrade connection to WebSocket", zap.Error(err))
		return
	}

	client := NewWSClient(s.hub, conn)
	s.hub.RegisterClient(client)
	client.Start()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debug("Failed to write JSON response", zap.Error(err))
	}
}

// Package bridge runs the automation bridge daemon: it polls configured
// displays for state snapshots and exposes them to smart-home platforms
// over MQTT and WebSocket, accepting set commands back over MQTT.
//
// # Architecture
//
//	registry ──> poller (per display) ──> updates channel ──> hub ──> /ws/state
//	                                                      └──> MQTT state + availability
//	MQTT command/# ──> dispatch ──> engine client ──> poller refresh
//
// Each display gets its own Poller goroutine that rebuilds the snapshot
// every poll interval, retrying a failed cycle once before flagging the
// display stale. Poll results fan out through a single updates channel to
// the WebSocket hub and, when configured, to retained MQTT topics.
//
// # MQTT Topics
//
//	sicp/<display>/state         retained JSON snapshot (QoS 1)
//	sicp/<display>/availability  retained "online"/"offline" (QoS 1)
//	sicp/<display>/command/#     inbound commands, e.g.:
//	    .../command/power   payload "on" or "off"
//	    .../command/volume  payload "42"
//	    .../command/mute    payload "on" or "off"
//	    .../command/input   payload "hdmi1" (any input alias)
//	    .../command/wake    sends a Wake-on-LAN magic packet
//
// # HTTP Endpoints
//
//	/health    liveness plus client/broker counters
//	/displays  every configured display with its last snapshot
//	/ws/state  WebSocket stream of state messages
//
// # Shutdown
//
// SIGINT/SIGTERM trigger a graceful stop: pollers drain, displays are
// marked offline on MQTT, then the HTTP server and hub close.
package bridge

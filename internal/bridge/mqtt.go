package bridge

import (
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/tidworth/sicp/internal/logging"
	"go.uber.org/zap"
)

const (
	// topicPrefix roots every bridge topic: sicp/<display>/state,
	// sicp/<display>/availability, sicp/<display>/command/<operation>
	topicPrefix = "sicp"

	mqttQoS       = 1
	mqttKeepAlive = 20 * time.Second

	payloadOnline  = "online"
	payloadOffline = "offline"
)

// CommandHandler receives one message published to a display's command
// topic. operation is the topic path after "command/" and payload the raw
// message body.
type CommandHandler func(display, operation, payload string)

// MQTTClient publishes display state to an MQTT broker and dispatches
// inbound command messages to the bridge.
type MQTTClient struct {
	client    mqtt.Client
	mu        sync.RWMutex
	connected bool
	handler   CommandHandler
}

// NewMQTTClient creates an MQTT client for the given broker URL
// (e.g. "tcp://broker.local:1883").
func NewMQTTClient(brokerURL, clientID string) *MQTTClient {
	c := &MQTTClient{}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetKeepAlive(mqttKeepAlive)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(c.onConnect)
	opts.SetConnectionLostHandler(c.onConnectionLost)

	c.client = mqtt.NewClient(opts)
	return c
}

// Connect establishes the connection to the MQTT broker
func (c *MQTTClient) Connect() error {
	logging.Info("Connecting to MQTT broker")

	token := c.client.Connect()
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	return nil
}

// Disconnect closes the connection to the MQTT broker
func (c *MQTTClient) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		c.client.Disconnect(250)
		c.connected = false
		logging.Info("Disconnected from MQTT broker")
	}
}

// IsConnected returns the connection status
func (c *MQTTClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// SetCommandHandler sets the callback for inbound command messages
func (c *MQTTClient) SetCommandHandler(handler CommandHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

// onConnect is called on every (re)connect; subscriptions do not survive
// a clean-session reconnect, so re-subscribe here.
func (c *MQTTClient) onConnect(client mqtt.Client) {
	filter := CommandTopicFilter()
	logging.Info("MQTT client connected, subscribing", zap.String("filter", filter))

	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	token := client.Subscribe(filter, mqttQoS, c.messageHandler)
	if token.Wait() && token.Error() != nil {
		logging.Error("Failed to subscribe to command topics", zap.Error(token.Error()))
	}
}

// onConnectionLost is called when the connection to the broker is lost
func (c *MQTTClient) onConnectionLost(client mqtt.Client, err error) {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()

	logging.Warn("MQTT connection lost", zap.Error(err))
}

// messageHandler routes inbound command messages to the handler
func (c *MQTTClient) messageHandler(client mqtt.Client, msg mqtt.Message) {
	displayName, operation, ok := parseCommandTopic(msg.Topic())
	if !ok {
		logging.Warn("Ignoring message on unexpected topic", zap.String("topic", msg.Topic()))
		return
	}

	c.mu.RLock()
	handler := c.handler
	c.mu.RUnlock()

	if handler != nil {
		handler(displayName, operation, string(msg.Payload()))
	}
}

// PublishState publishes a retained state document for a display
func (c *MQTTClient) PublishState(displayName string, payload []byte) error {
	if !c.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	token := c.client.Publish(StateTopic(displayName), mqttQoS, true, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to publish state for %s: %w", displayName, token.Error())
	}
	return nil
}

// PublishAvailability publishes a retained online/offline marker for a display
func (c *MQTTClient) PublishAvailability(displayName string, online bool) error {
	if !c.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	payload := payloadOffline
	if online {
		payload = payloadOnline
	}

	token := c.client.Publish(AvailabilityTopic(displayName), mqttQoS, true, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to publish availability for %s: %w", displayName, token.Error())
	}
	return nil
}

// StateTopic returns the retained-state topic for a display
func StateTopic(displayName string) string {
	return topicPrefix + "/" + displayName + "/state"
}

// AvailabilityTopic returns the availability topic for a display
func AvailabilityTopic(displayName string) string {
	return topicPrefix + "/" + displayName + "/availability"
}

// CommandTopicFilter returns the wildcard subscription covering every
// display's command topics
func CommandTopicFilter() string {
	return topicPrefix + "/+/command/#"
}

// parseCommandTopic splits "sicp/<display>/command/<operation>" into its
// display name and operation. Multi-level operations keep their slashes.
func parseCommandTopic(topic string) (displayName, operation string, ok bool) {
	parts := strings.Split(topic, "/")
	if len(parts) < 4 || parts[0] != topicPrefix || parts[2] != "command" {
		return "", "", false
	}
	if parts[1] == "" || parts[3] == "" {
		return "", "", false
	}
	return parts[1], strings.Join(parts[3:], "/"), true
}

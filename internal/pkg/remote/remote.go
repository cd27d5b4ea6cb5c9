// Package remote runs the switch firmware's background command task. Without
// a broker configured it only waits out the poll interval, which is all the
// original command listener ever did; with one it subscribes to the device's
// command topic and feeds the dispatcher.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/karyx/edge-firmware/internal/pkg/runstate"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

var errConnectTimeout = errors.New("unable to connect to broker in time")

// commandMessage is the wire form of a remotely issued command.
type commandMessage struct {
	Command string `json:"command"`
	Channel int    `json:"channel"`
}

// Poller is the background command source. Dispatch is invoked from the MQTT
// client's callback goroutine; the store's own locking makes that safe
// alongside the interactive loop.
type Poller struct {
	broker    string
	clientID  string
	topic     string
	interval  time.Duration
	flag      *runstate.Flag
	dispatch  func(cmd string, channel int)
	newClient func(opts *paho.ClientOptions) paho.Client
	logger    *zap.Logger
}

func NewPoller(broker, clientID, topic string, interval time.Duration, flag *runstate.Flag, dispatch func(cmd string, channel int)) *Poller {
	return &Poller{
		broker:    broker,
		clientID:  clientID,
		topic:     topic,
		interval:  interval,
		flag:      flag,
		dispatch:  dispatch,
		newClient: paho.NewClient,
		logger:    zap.L(),
	}
}

// CommandTopic names the topic a device listens on for panel commands.
func CommandTopic(deviceID string) string {
	return fmt.Sprintf("karyx/devices/%s/commands", deviceID)
}

// Run blocks until the run flag stops, waking once per poll interval. A
// failed broker connection downgrades the task to the plain wait loop; the
// device keeps working from local commands only.
func (p *Poller) Run() error {
	p.logger.Info("command listener started", zap.Duration("poll_interval", p.interval))

	if p.broker != "" {
		client, err := p.connect()
		if err != nil {
			p.logger.Error("remote commands unavailable", zap.String("broker", p.broker), zap.Error(err))
		} else {
			defer client.Disconnect(250)
		}
	}

	for runstate.Wait(p.flag, p.interval) {
	}
	p.logger.Info("command listener stopped")
	return nil
}

func (p *Poller) connect() (paho.Client, error) {
	opts := paho.NewClientOptions().
		AddBroker(p.broker).
		SetClientID(p.clientID).
		SetAutoReconnect(true)

	client := p.newClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, errConnectTimeout
	}
	if err := token.Error(); err != nil {
		return nil, err
	}

	sub := client.Subscribe(p.topic, 1, p.onMessage)
	if !sub.WaitTimeout(connectTimeout) {
		client.Disconnect(250)
		return nil, errConnectTimeout
	}
	if err := sub.Error(); err != nil {
		client.Disconnect(250)
		return nil, err
	}

	p.logger.Info("subscribed to command topic", zap.String("topic", p.topic))
	return client, nil
}

func (p *Poller) onMessage(_ paho.Client, msg paho.Message) {
	var cmd commandMessage
	if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
		p.logger.Warn("ignoring malformed command message", zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}
	p.dispatch(cmd.Command, cmd.Channel)
}

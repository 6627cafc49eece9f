package gate

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Command is what the conveyor controller acts on. Accepted opens the gate
// toward the collection bin, otherwise the object is diverted to reject.
type Command struct {
	Accepted   bool    `json:"accepted"`
	Reason     string  `json:"reason"`
	Category   string  `json:"category,omitempty"`
	Confidence float64 `json:"confidence"`
}

type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type IGate interface {
	Dispatch(cmd Command) (*Ack, error)
	IsConnected() bool
	Reconnect() error
	Close()
}

type gateClient struct {
	conn         *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewGateClient() IGate {
	client := &gateClient{
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}

	go func() {
		if err := client.Reconnect(); err != nil {
			log.Printf("Initial connection to gate controller failed: %v. Will retry on demand.", err)
		} else {
			log.Printf("Successfully connected to gate controller")
		}
	}()

	return client
}

func (c *gateClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn != nil
}

func (c *gateClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	url := os.Getenv("GATE_CONTROLLER_URL")
	if url == "" {
		url = "ws://localhost:8090/gate/ws"
	}

	log.Printf("Connecting to gate controller at %s", url)

	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			log.Printf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn

	go c.keepAlive()

	return nil
}

func (c *gateClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *gateClient) keepAlive() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		conn := c.conn
		if conn == nil {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(
			websocket.PingMessage,
			[]byte{},
			time.Now().Add(c.writeTimeout),
		)

		if err != nil {
			log.Printf("Ping failed for gate controller, marking connection as dead: %v", err)
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

func (c *gateClient) getConnection() (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, fmt.Errorf("not connected to gate controller")
	}

	return c.conn, nil
}

// Dispatch sends one command and waits for the controller's ack. A dead
// connection is retried once before giving up; the caller decides whether a
// missed gate actuation is fatal for the deposit.
func (c *gateClient) Dispatch(cmd Command) (*Ack, error) {
	conn, err := c.getConnection()
	if err != nil {
		if err := c.Reconnect(); err != nil {
			return nil, fmt.Errorf("cannot connect to gate controller: %w", err)
		}
		conn, err = c.getConnection()
		if err != nil {
			return nil, err
		}
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("error marshaling gate command: %w", err)
	}

	c.mu.Lock()

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))

	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.conn = nil
		conn.Close()
		c.mu.Unlock()
		return nil, fmt.Errorf("error sending gate command: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(c.readTimeout))

	c.mu.Unlock()

	_, message, err := conn.ReadMessage()
	if err != nil {
		c.mu.Lock()
		c.conn = nil
		conn.Close()
		c.mu.Unlock()
		return nil, fmt.Errorf("error reading gate ack: %w", err)
	}

	c.mu.Lock()
	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})
	c.mu.Unlock()

	var ack Ack
	if err := json.Unmarshal(message, &ack); err != nil {
		return nil, fmt.Errorf("error unmarshaling gate ack: %w", err)
	}

	return &ack, nil
}

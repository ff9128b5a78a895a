package socket

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"Forum/pkg/log"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// EventHandler 处理客户端上行事件
type EventHandler func(c *Client, event string, data gjson.Result)

type Client struct {
	id     int64
	userID uint64
	role   int

	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	closed  atomic.Bool
	onEvent EventHandler

	mu    sync.Mutex
	rooms map[string]struct{}
}

func NewClient(id int64, hub *Hub, conn *websocket.Conn, userID uint64, role int, onEvent EventHandler) *Client {
	return &Client{
		id:      id,
		userID:  userID,
		role:    role,
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		onEvent: onEvent,
		rooms:   make(map[string]struct{}),
	}
}

func (c *Client) ID() int64 { return c.id }

func (c *Client) UserID() uint64 { return c.userID }

func (c *Client) Role() int { return c.role }

func (c *Client) Hub() *Hub { return c.hub }

func (c *Client) key() string {
	return strconv.FormatInt(c.id, 10)
}

func (c *Client) track(room string, joined bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if joined {
		c.rooms[room] = struct{}{}
	} else {
		delete(c.rooms, room)
	}
}

func (c *Client) joined() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.rooms))
	for r := range c.rooms {
		out = append(out, r)
	}
	return out
}

// Rooms 当前加入的房间
func (c *Client) Rooms() []string {
	return c.joined()
}

// enqueue 发送缓冲满时丢弃，慢连接不影响其他连接
func (c *Client) enqueue(frame []byte) bool {
	if c.closed.Load() {
		return false
	}
	select {
	case c.send <- frame:
		return true
	case <-c.done:
		return false
	default:
		eventsDropped.WithLabelValues("client_buffer_full").Inc()
		log.L.Warn("client send buffer full, frame dropped",
			zap.Int64("client_id", c.id), zap.Uint64("user_id", c.userID))
		return false
	}
}

// Emit 直接向当前连接写一帧
func (c *Client) Emit(event string, payload any) {
	msg, err := NewMessage("", event, payload)
	if err != nil {
		return
	}
	c.enqueue(msg.Frame)
}

func (c *Client) Closed() bool {
	return c.closed.Load()
}

func (c *Client) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	close(c.done)
	c.hub.Unregister(c)
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// ReadPump 读取上行帧直到连接断开
func (c *Client) ReadPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.L.Info("websocket read error", zap.Int64("client_id", c.id), zap.Error(err))
			}
			return
		}
		c.Dispatch(data)
	}
}

// Dispatch 解析 {"event": ..., "data": ...} 并交给事件处理器
func (c *Client) Dispatch(data []byte) {
	if !gjson.ValidBytes(data) {
		c.Emit("error", "invalid frame")
		return
	}
	event := gjson.GetBytes(data, "event").String()
	if event == "" {
		c.Emit("error", "missing event")
		return
	}
	if event == "ping" {
		c.Emit("pong", nil)
		return
	}
	if c.onEvent != nil {
		c.onEvent(c, event, gjson.GetBytes(data, "data"))
	}
}

// WritePump 写出下行帧并定时 ping
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

package socket

import (
	"context"
	"sort"
	"sync"

	"Forum/pkg/log"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

const defaultQueueSize = 256

type room struct {
	mu      sync.RWMutex
	members map[int64]*Client
	// removed 已从房间表删除，持有旧引用的 Join 需要重取
	removed bool
}

// Hub 管理本节点的连接与房间，投递由 Run 所在的单个协程完成
type Hub struct {
	clients cmap.ConcurrentMap[string, *Client]
	rooms   cmap.ConcurrentMap[string, *room]
	queue   chan *Message
}

func NewHub(queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Hub{
		clients: cmap.New[*Client](),
		rooms:   cmap.New[*room](),
		queue:   make(chan *Message, queueSize),
	}
}

// ToRoom 入队后立即返回，不等待投递
func (h *Hub) ToRoom(room, event string, payload any) {
	msg, err := NewMessage(room, event, payload)
	if err != nil {
		log.L.Error("encode socket frame error", zap.String("event", event), zap.Error(err))
		return
	}
	h.Publish(msg)
}

func (h *Hub) ToAll(event string, payload any) {
	h.ToRoom(Broadcast, event, payload)
}

// Publish 非阻塞入队，队列满时丢弃
func (h *Hub) Publish(msg *Message) bool {
	select {
	case h.queue <- msg:
		return true
	default:
		eventsDropped.WithLabelValues("hub_queue_full").Inc()
		log.L.Warn("socket queue full, frame dropped", zap.String("room", msg.Room))
		return false
	}
}

func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil
		case msg := <-h.queue:
			h.deliver(msg)
		}
	}
}

func (h *Hub) deliver(msg *Message) {
	targets := h.members(msg.Room)
	for _, c := range targets {
		if c.enqueue(msg.Frame) {
			eventsDelivered.WithLabelValues(roomLabel(msg.Room)).Inc()
		}
	}
}

// members 按连接 id 排序，保证同一帧的投递顺序稳定
func (h *Hub) members(name string) []*Client {
	var out []*Client
	if name == Broadcast {
		for _, c := range h.clients.Items() {
			out = append(out, c)
		}
	} else if r, ok := h.rooms.Get(name); ok {
		r.mu.RLock()
		out = make([]*Client, 0, len(r.members))
		for _, c := range r.members {
			out = append(out, c)
		}
		r.mu.RUnlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (h *Hub) Register(c *Client) {
	h.clients.Set(c.key(), c)
	connections.Inc()
}

func (h *Hub) Unregister(c *Client) {
	if _, ok := h.clients.Pop(c.key()); !ok {
		return
	}
	connections.Dec()
	for _, name := range c.joined() {
		h.Leave(c, name)
	}
}

// Join 已关闭的连接不会再进入房间
func (h *Hub) Join(c *Client, name string) {
	if c.Closed() {
		return
	}
	for {
		r := h.rooms.Upsert(name, nil, func(exist bool, old *room, _ *room) *room {
			if exist {
				return old
			}
			return &room{members: make(map[int64]*Client)}
		})
		r.mu.Lock()
		if r.removed {
			r.mu.Unlock()
			continue
		}
		r.members[c.id] = c
		r.mu.Unlock()
		break
	}
	c.track(name, true)

	// Close 先置位再遍历 joined()，此处复查可覆盖并发关闭
	if c.Closed() {
		h.Leave(c, name)
	}
}

// Leave 房间为空时从房间表删除
func (h *Hub) Leave(c *Client, name string) {
	c.track(name, false)
	r, ok := h.rooms.Get(name)
	if !ok {
		return
	}
	r.mu.Lock()
	delete(r.members, c.id)
	r.mu.Unlock()

	h.rooms.RemoveCb(name, func(_ string, r *room, exists bool) bool {
		if !exists {
			return false
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		if len(r.members) > 0 {
			return false
		}
		r.removed = true
		return true
	})
}

// RoomCount 当前存在的房间数
func (h *Hub) RoomCount() int {
	return h.rooms.Count()
}

// RoomSize 当前房间的连接数
func (h *Hub) RoomSize(name string) int {
	if name == Broadcast {
		return h.clients.Count()
	}
	r, ok := h.rooms.Get(name)
	if !ok {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (h *Hub) closeAll() {
	for _, c := range h.clients.Items() {
		c.Close()
	}
}

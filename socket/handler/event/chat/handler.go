package chat

import (
	"Forum/dao"
	"Forum/pkg/log"
	"Forum/pkg/socket"
	"Forum/types"
	"sync"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type handle func(client *socket.Client, data gjson.Result)

// Handler 客户端上行事件分发
type Handler struct {
	TopicDAO *dao.Topic

	once     sync.Once
	handlers map[string]handle
}

func (h *Handler) init() {
	h.handlers = map[string]handle{
		types.EventJoinTopic:  h.onJoinTopic,
		types.EventLeaveTopic: h.onLeaveTopic,
	}
}

// Call 作为 socket.EventHandler 交给每个连接
func (h *Handler) Call(client *socket.Client, event string, data gjson.Result) {
	h.once.Do(h.init)

	call, ok := h.handlers[event]
	if !ok {
		log.L.Debug("unregistered socket event", zap.String("event", event), zap.Int64("client_id", client.ID()))
		client.Emit("error", "Evento desconhecido: "+event)
		return
	}
	call(client, data)
}

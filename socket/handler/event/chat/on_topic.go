package chat

import (
	"Forum/pkg/log"
	"Forum/pkg/socket"
	"context"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const lookupTimeout = 3 * time.Second

// topicID 兼容 12、"12" 与 {"id_topico": 12}
func topicID(data gjson.Result) uint64 {
	if data.IsObject() {
		data = data.Get("id_topico")
	}
	return data.Uint()
}

// onJoinTopic 加入 topico_<id> 房间，话题不存在时回复 error
func (h *Handler) onJoinTopic(client *socket.Client, data gjson.Result) {
	id := topicID(data)
	if id == 0 {
		client.Emit("error", "Identificador de tópico inválido")
		return
	}

	if h.TopicDAO != nil {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		exist, err := h.TopicDAO.IsExist(ctx, "id_topico = ?", id)
		if err != nil {
			log.L.Warn("lookup topic for join error", zap.Uint64("topic_id", id), zap.Error(err))
		} else if !exist {
			client.Emit("error", "Tópico não encontrado")
			return
		}
	}

	room := socket.TopicRoom(id)
	client.Hub().Join(client, room)
	log.L.Debug("client joined topic", zap.Int64("client_id", client.ID()), zap.String("room", room))
}

func (h *Handler) onLeaveTopic(client *socket.Client, data gjson.Result) {
	id := topicID(data)
	if id == 0 {
		return
	}
	client.Hub().Leave(client, socket.TopicRoom(id))
}

package socket

import (
	"encoding/json"
	"strconv"
)

const (
	// AdminRoom 管理员与版主接收举报通知的房间
	AdminRoom = "admin_channel"
	// Broadcast 空房间名表示投递给所有连接
	Broadcast = ""

	topicRoomPrefix = "topico_"
)

func TopicRoom(topicID uint64) string {
	return topicRoomPrefix + strconv.FormatUint(topicID, 10)
}

// Frame 下行帧格式 {"event": ..., "data": ...}
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Message 待投递的帧，Frame 在入队前已序列化
type Message struct {
	Room  string          `json:"room"`
	Frame json.RawMessage `json:"frame"`
}

func NewMessage(room, event string, payload any) (*Message, error) {
	b, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		return nil, err
	}
	return &Message{Room: room, Frame: b}, nil
}

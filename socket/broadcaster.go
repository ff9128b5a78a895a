package socket

import (
	"Forum/config"
	"Forum/pkg/socket"
	"Forum/service"
	"Forum/socket/process"
)

// NewHub 按配置的队列长度创建本节点 hub
func NewHub(conf *config.Config) *socket.Hub {
	return socket.NewHub(conf.Socket.Buffer)
}

// NewBroadcaster 配置了 redis relay 时经 redis 扇出，否则直接进本地 hub
func NewBroadcaster(hub *socket.Hub, relay *process.RedisRelay) service.Broadcaster {
	if relay != nil {
		return relay
	}
	return hub
}

package process

import (
	"Forum/pkg/log"
	"Forum/pkg/socket"
	"context"
)

// HubServer 本节点的投递协程
type HubServer struct {
	Hub *socket.Hub
}

func (s *HubServer) Init() error {
	return nil
}

func (s *HubServer) Setup(ctx context.Context) error {
	log.L.Info("socket hub started")
	return s.Hub.Run(ctx)
}

package socket

import (
	"Forum/socket/handler"
	"Forum/socket/process"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewHub,
	NewBroadcaster,
	process.NewRedisRelay,
	wire.Struct(new(process.HubServer), "*"),
	wire.Struct(new(process.SubServers), "*"),
	process.NewServer,
	handler.ProviderSet,
)

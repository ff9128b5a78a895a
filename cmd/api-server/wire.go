//go:build wireinject
// +build wireinject

package main

import (
	"Forum/config"
	"Forum/dao"
	"Forum/dao/cache"
	"Forum/handler"
	"Forum/pkg/client"
	"Forum/pkg/database"
	"Forum/pkg/rocketmq"
	"Forum/pkg/server"
	"Forum/service"
	"Forum/socket"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		config.ProvideOssConfig,
		config.ProvideUploadConfig,
		config.ProvideModerationConfig,
		config.ProvideRocketMQConfig,
		rocketmq.InitProducer,
		wire.Bind(new(service.ReportNotifier), new(*rocketmq.Producer)),

		dao.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,
		socket.ProviderSet,

		wire.Struct(new(handler.Health), "*"),
		wire.Struct(new(handler.TopicHandler), "*"),
		wire.Struct(new(handler.CommentsHandler), "*"),
		wire.Struct(new(handler.ReportHandler), "*"),

		server.NewGinEngine,
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}

func InitLegacyImport(cfg *config.Config) *service.LegacyImportService {
	wire.Build(
		database.NewDB,
		dao.NewLegacyComment,
		dao.NewComment,
		wire.Struct(new(service.LegacyImportService), "*"),
	)
	return nil
}

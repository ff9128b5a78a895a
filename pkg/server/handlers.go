package server

import (
	"Forum/handler"
	sockethandler "Forum/socket/handler"
)

type Handlers struct {
	Health   *handler.Health
	Topic    *handler.TopicHandler
	Comments *handler.CommentsHandler
	Reports  *handler.ReportHandler
	Socket   *sockethandler.Handler
}

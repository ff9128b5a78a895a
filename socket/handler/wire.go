package handler

import (
	"Forum/socket/handler/event/chat"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(chat.Handler), "TopicDAO"),
	wire.Struct(new(ChatChannel), "*"),
	wire.Struct(new(Handler), "*"),
)

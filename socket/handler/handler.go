package handler

import (
	"Forum/config"
	"Forum/middleware"
	"Forum/pkg/context"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Chat   *ChatChannel
	Config *config.Config
}

// RegisterRouter /ws?token=<jwt>
func (h *Handler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(h.Config.Jwt)
	r.GET("/ws", authorize, context.Wrap(h.Chat.Conn))
}

package handler

import (
	"Forum/models"
	"Forum/pkg/context"
	"Forum/pkg/log"
	"Forum/pkg/response"
	"Forum/pkg/snowflake"
	"Forum/pkg/socket"
	"Forum/socket/handler/event/chat"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type ChatChannel struct {
	Hub   *socket.Hub
	Event *chat.Handler
}

// Conn 升级连接；管理员与版主自动进入 admin_channel
func (ch *ChatChannel) Conn(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Utilizador não autenticado")
	}
	role := context.GetRole(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失败时已写出 4xx
		log.L.Warn("websocket upgrade error", zap.Uint64("user_id", userID), zap.Error(err))
		return nil
	}

	client := socket.NewClient(snowflake.GenID(), ch.Hub, conn, userID, role, ch.Event.Call)
	ch.Hub.Register(client)
	if models.IsModerator(role) {
		ch.Hub.Join(client, socket.AdminRoom)
	}
	log.L.Info("websocket connected",
		zap.Int64("client_id", client.ID()), zap.Uint64("user_id", userID), zap.Int("role", role))

	go client.WritePump()
	go client.ReadPump()
	return nil
}

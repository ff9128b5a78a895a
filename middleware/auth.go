package middleware

import (
	"net/http"
	"strings"
	"time"

	"Forum/config"
	"Forum/pkg/context"
	"Forum/pkg/jwt"
	"Forum/pkg/log"
	"Forum/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// refreshWindow 剩余有效期低于该值时下发新 token
const refreshWindow = time.Minute

// Token 优先读取 Authorization: Bearer，其次 ?token= (websocket 握手)
func Token(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}
	if token := c.Query("token"); token != "" {
		return token, true
	}
	return "", true
}

func Auth(conf *config.Jwt) gin.HandlerFunc {
	secret := []byte(conf.Secret)
	return func(c *gin.Context) {
		token, ok := Token(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "Formato de Authorization inválido")
			return
		}
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "Token não fornecido")
			return
		}

		claims, err := jwt.ParseToken(secret, token)
		if err != nil {
			log.L.Debug("parse token error", zap.Error(err))
			response.Abort(c, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}

		if claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) < refreshWindow && conf.Expire > 0 {
			newToken, err := jwt.GenerateToken(secret, claims.UserID, claims.Role, time.Duration(conf.Expire)*time.Second)
			if err == nil {
				c.Header("X-New-Access-Token", newToken)
			}
		}

		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxRole, claims.Role)
		c.Next()
	}
}

// Authorize 仅允许指定 id_cargo 访问，需放在 Auth 之后
func Authorize(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := context.GetRole(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, "Acesso negado")
	}
}

package http

import (
	"net/http"
	"strings"

	"github.com/agrigrow/storefront/internal/auth/application"
	"github.com/agrigrow/storefront/pkg/response"
	"github.com/gin-gonic/gin"
)

// UserIDKey gin 上下文中保存当前用户 ID 的键
const UserIDKey = "user_id"

// UserID 返回当前请求已认证的用户 ID，未认证返回空串
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// RequireAuth 校验 Bearer 令牌，识别失败返回 401
func RequireAuth(app *application.AuthApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		session, err := app.Identify(c.Request.Context(), token)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusUnauthorized, "sign in required")
			c.Abort()
			return
		}
		c.Set(UserIDKey, session.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/user/filmfest/internal/model"
)

// Claims JWT 声明
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth 必须登录中间件
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
			c.Abort()
			return
		}

		// 将用户信息存入上下文
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		// 滑动续期逻辑：如果 Token 过期时间消耗超过一半，则刷新
		if shouldRefresh(claims) {
			expiry := claims.RegisteredClaims.ExpiresAt.Sub(claims.RegisteredClaims.IssuedAt.Time)
			newToken, err := GenerateToken(claims.UserID, claims.Email, claims.Role, jwtSecret, expiry)
			if err == nil {
				c.SetCookie("token", newToken, int(expiry.Seconds()), "/", "", false, true)
			}
		}

		c.Next()
	}
}

// OptionalAuth 可选登录中间件（不强制要求登录）
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c, jwtSecret)
		if err == nil {
			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("role", claims.Role)
		}
		c.Next()
	}
}

// RequireRole 角色权限中间件，需跟在 RequireAuth 之后
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, exists := c.Get("role")
		if !exists || got != string(role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "权限不足"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// extractClaims 从 Cookie 或 Header 中提取 JWT Claims
func extractClaims(c *gin.Context, jwtSecret string) (*Claims, error) {
	var tokenString string

	// 优先从 Cookie 获取
	if cookie, err := c.Cookie("token"); err == nil {
		tokenString = cookie
	} else {
		// 从 Authorization Header 获取
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if tokenString == "" {
		return nil, jwt.ErrTokenMalformed
	}

	// 解析 Token
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// GetUserID 从上下文获取用户 ID（未登录返回 0）
func GetUserID(c *gin.Context) int {
	if userID, exists := c.Get("user_id"); exists {
		return userID.(int)
	}
	return 0
}

// GetRole 从上下文获取用户角色（未登录返回空串）
func GetRole(c *gin.Context) string {
	if role, exists := c.Get("role"); exists {
		return role.(string)
	}
	return ""
}

// GenerateToken 生成 JWT Token
func GenerateToken(userID int, email, role, jwtSecret string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// shouldRefresh 判断是否需要刷新 Token
// 逻辑：如果已经消耗了总有效期的 50% 以上，则建议刷新
func shouldRefresh(claims *Claims) bool {
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return false
	}

	totalDuration := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	elapsedDuration := time.Since(claims.IssuedAt.Time)

	return elapsedDuration > totalDuration/2
}

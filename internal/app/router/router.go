// Package router はHTTPルーティングを構築します。
package router

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rentease_backend/internal/api"
	authhandler "rentease_backend/internal/feature/auth/transport/handler"
	propertyhandler "rentease_backend/internal/feature/property/transport/handler"
	"rentease_backend/internal/platform/http/handler"
	jwtmw "rentease_backend/internal/platform/jwt"
	"rentease_backend/internal/platform/logger"
)

// maxMultipartMemory は multipart フォームをメモリに保持する上限です（画像5枚想定）。
const maxMultipartMemory = 32 << 20

// Handlers はルーティング対象のハンドラー群です。
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Property *propertyhandler.PropertyHandler
	// Ready は /readyz のハンドラーです。nil の場合は常に ok を返します。
	Ready gin.HandlerFunc
}

// Options はルーターの横断的な設定です。
type Options struct {
	// CORSOrigins に "*" が含まれる場合は全オリジンを許可します。
	CORSOrigins []string
	// StaticDir はフロントエンドの静的ファイルのディレクトリです。空なら配信しません。
	StaticDir string
	Logger    *slog.Logger
}

// NewRouter はAPIルートと静的フロントエンドを登録した gin.Engine を返します。
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = maxMultipartMemory
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			slog.Error("panic recovered", "error", recovered, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server Error"})
		}),
		logger.RequestLogger(opts.Logger),
		cors.New(corsConfig(opts.CORSOrigins)),
	)

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	ready := h.Ready
	if ready == nil {
		ready = handler.Ready(nil, time.Second)
	}
	r.GET("/readyz", ready)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/signup", h.Auth.Signup)
		apiGroup.POST("/login", h.Auth.Login)
		apiGroup.POST("/forgot-password", h.Auth.ForgotPassword)
		apiGroup.POST("/reset-password", h.Auth.ResetPassword)
		apiGroup.POST("/send-signup-otp", h.Auth.SendSignupOTP)
		apiGroup.POST("/verify-signup-otp", h.Auth.VerifySignupOTP)
	}

	props := apiGroup.Group("/properties")
	{
		props.GET("", h.Property.List)
		props.GET("/:id", h.Property.Get)

		// 認証必須のルート
		// → リクエストヘッダーに JWT が必要になる
		owner := props.Group("")
		owner.Use(jwtmw.AuthRequired())
		owner.GET("/my-properties", h.Property.MyProperties)
		owner.POST("/add-property", h.Property.Create)
		owner.POST("/describe", h.Property.Describe)
		owner.PUT("/:id", h.Property.Update)
		owner.DELETE("/:id", h.Property.Delete)
	}

	r.NoRoute(fallback(opts.StaticDir))
	return r
}

// corsConfig は許可オリジンから cors.Config を組み立てます。
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// fallback は未定義ルートを処理します。
// /api 配下は JSON の404、それ以外は静的ファイルか home.html を返します。
func fallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "API route not found"})
			return
		}
		if staticDir == "" || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Not found"})
			return
		}

		name := filepath.Join(staticDir, filepath.FromSlash(path.Clean("/"+p)))
		if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
			c.File(name)
			return
		}
		home := filepath.Join(staticDir, "home.html")
		if _, err := os.Stat(home); err != nil {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Not found"})
			return
		}
		c.File(home)
	}
}

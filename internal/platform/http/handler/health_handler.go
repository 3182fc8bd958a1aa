// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// pingTimeout bounds the cache check so /healthz stays responsive when the backend hangs.
const pingTimeout = time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler は /healthz エンドポイントを処理します。
// キャッシュに到達できなくてもサービスは上流から直接応答できるため、
// その場合も200を返し status を "degraded" とします。
type HealthHandler struct {
	cache Pinger
}

// NewHealthHandler は新しいHealthHandlerを生成します。cache が nil の場合はキャッシュを確認しません。
func NewHealthHandler(cache Pinger) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Health はHTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	status, cacheStatus := "ok", "disabled"
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			status, cacheStatus = "degraded", "down"
		} else {
			cacheStatus = "up"
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "cache": cacheStatus})
}

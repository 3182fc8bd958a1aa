// Package http provides outbound HTTP client construction.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Client.Timeout: リクエスト全体のタイムアウト（上流ごとの設定値）
//   - MaxConnsPerHost: 上流への同時接続数の上限（0は無制限）
//   - Dialer / TLS: デフォルトより短いタイムアウトで接続失敗を早期に検出
//
// http.DefaultClientにはタイムアウトがないため、外部APIには常にこの関数で作成したクライアントを使用します。
func NewHTTPClient(timeout time.Duration, maxConnsPerHost int) *http.Client {
	if maxConnsPerHost < 0 {
		maxConnsPerHost = 0
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: max(maxConnsPerHost, 2),
		MaxConnsPerHost:     maxConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

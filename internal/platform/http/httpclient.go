// Package http は外部API呼び出し用の HTTP クライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient はタイムアウトと接続プールを明示的に設定したクライアントを返します。
// http.DefaultClient にはタイムアウトがないため、外部API（Resend など）にはこちらを使うこと。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

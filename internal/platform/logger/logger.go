// Package logger は slog のハンドラー構築と gin 用のリクエストログを提供します。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Options は New に渡す設定です。
type Options struct {
	// Writer の出力先。nil の場合は os.Stdout
	Writer io.Writer
	// Level は "debug" / "info" / "warn" / "error"
	Level string
	// JSON が true の場合は JSON 形式、false の場合は tint による色付きテキスト
	JSON bool
}

// New は Options に従って *slog.Logger を生成します。
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	level := ParseLevel(opts.Level)

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		})
	}
	return slog.New(handler)
}

// Setup は New で生成したロガーをデフォルトに設定して返します。
func Setup(opts Options) *slog.Logger {
	l := New(opts)
	slog.SetDefault(l)
	return l
}

// ParseLevel はレベル文字列を slog.Level に変換します。未知の値は Info です。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

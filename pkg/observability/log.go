package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, except failures,
// which are logged as errors. It implements all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

var (
	_ RenderHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("events")}
}

func (h *LogHooks) OnRenderStart(_ context.Context, id string, formats []string) {
	h.logger.Debug("render started", "id", id, "formats", formats)
}

func (h *LogHooks) OnFormatComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("format failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("format rendered", "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, id string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "id", id, "err", err)
		return
	}
	h.logger.Debug("render complete", "id", id, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, format string) {
	h.logger.Debug("cache hit", "format", format)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, format string) {
	h.logger.Debug("cache miss", "format", format)
}

func (h *LogHooks) OnCacheSet(_ context.Context, format string, size int) {
	h.logger.Debug("cache set", "format", format, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Error("response", "method", method, "path", path, "status", status, "duration", d)
		return
	}
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

// Install registers h for render, cache and HTTP events.
func (h *LogHooks) Install() {
	SetRenderHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

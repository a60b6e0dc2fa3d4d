package notify

import (
	"context"

	"github.com/smart-mailbox/backend/internal/logging"
)

// LogDispatcher logs messages instead of delivering them. It is used when
// no push-gateway credentials are configured, typically in the local
// variant.
type LogDispatcher struct {
	logger logging.Logger
}

func NewLogDispatcher(logger logging.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger.With("module", "notify")}
}

func (d *LogDispatcher) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	d.logger.Info(ctx, "push delivery skipped (no gateway configured)",
		"token", token, "title", title, "data", data)
	return nil
}

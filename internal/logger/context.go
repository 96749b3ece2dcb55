package logger

import (
	"context"
	"log/slog"

	"github.com/checkhealth/goals/internal/ctxkeys"
	slogmulti "github.com/samber/slog-multi"
)

const requestIDAttr = "request_id"

// requestIDMiddleware copies the request id from the context onto records
// logged with the *Context variants. Records that already carry one are
// left unchanged.
var requestIDMiddleware = slogmulti.NewHandleInlineMiddleware(
	func(ctx context.Context, record slog.Record, next func(context.Context, slog.Record) error) error {
		id := ctxkeys.RequestID(ctx)
		if id == "" || hasAttr(record, requestIDAttr) {
			return next(ctx, record)
		}
		record = record.Clone()
		record.AddAttrs(slog.String(requestIDAttr, id))
		return next(ctx, record)
	},
)

func hasAttr(record slog.Record, key string) bool {
	found := false
	record.Attrs(func(a slog.Attr) bool {
		found = a.Key == key
		return !found
	})
	return found
}

package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/memberwise/memberful-go/internal/xhttp"
)

func Error(err error) slog.Attr {
	const errorKey = "error"
	return slog.String(errorKey, err.Error())
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func IP(ip string) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, ip)
}

func RequestIP(r *http.Request) slog.Attr {
	return IP(xhttp.GetRequestIP(r))
}

func EventType(eventType string) slog.Attr {
	const eventTypeKey = "event_type"
	return slog.String(eventTypeKey, eventType)
}

func MemberID(id int64) slog.Attr {
	const memberIDKey = "member_id"
	return slog.Int64(memberIDKey, id)
}

func Page(page int) slog.Attr {
	const pageKey = "page"
	return slog.Int(pageKey, page)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

package ui

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// accessLogFormatter writes chi's request lines through slog with the query
// string removed, so tokens passed as parameters never reach the log.
type accessLogFormatter struct {
	next middleware.LogFormatter
}

func newAccessLogFormatter(logger *slog.Logger) *accessLogFormatter {
	return &accessLogFormatter{next: &middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}}
}

// NewLogEntry implements middleware.LogFormatter.
func (f *accessLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	if r.URL.RawQuery == "" && r.URL.Fragment == "" {
		return f.next.NewLogEntry(r)
	}
	u := *r.URL
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	logged := r.WithContext(r.Context())
	logged.URL = &u
	logged.RequestURI = u.RequestURI()
	return f.next.NewLogEntry(logged)
}

package api

import (
	"github.com/rs/zerolog"
)

// Observer is told about every failed request. The client installs exactly
// one per process; it is the only place failures become visible.
type Observer interface {
	RequestFailed(method, url string, err error)
}

// LogObserver logs failures through zerolog.
type LogObserver struct {
	Logger zerolog.Logger
}

func (o LogObserver) RequestFailed(method, url string, err error) {
	ev := o.Logger.Error().
		Str("method", method).
		Str("url", url).
		Err(err)
	if se, ok := AsStatusError(err); ok {
		ev = ev.Int("status", se.StatusCode)
	}
	ev.Msg("request failed")
}

package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Phanuelx/Education-App/internal/core/ports"
)

// ConsoleSender writes notifications to the log instead of delivering them.
// Used in development.
type ConsoleSender struct {
	from Address
	log  zerolog.Logger
}

func NewConsoleSender(from Address, log zerolog.Logger) *ConsoleSender {
	return &ConsoleSender{from: from, log: log}
}

func (s *ConsoleSender) Send(_ context.Context, n ports.Notification) error {
	s.log.Info().
		Str("channel", string(n.Channel)).
		Str("from", s.from.String()).
		Str("to", n.To).
		Str("subject", n.Subject).
		Str("text", n.Text).
		Msg("notification")
	return nil
}

package notify

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"
)

const (
	ProviderConsole  = "console"
	ProviderSendGrid = "sendgrid"
)

// Address is a sender identity for outgoing mail.
type Address struct {
	Name    string
	Address string
}

func (a Address) String() string {
	return (&mail.Address{Name: a.Name, Address: a.Address}).String()
}

// Options selects and configures the delivery backend.
type Options struct {
	Provider       string
	SendGridAPIKey string
	From           Address
}

// NewSender builds the Sender named by opts.Provider.
func NewSender(opts Options, log zerolog.Logger) (Sender, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderConsole:
		return NewConsoleSender(opts.From, log), nil
	case ProviderSendGrid:
		if opts.SendGridAPIKey == "" {
			return nil, fmt.Errorf("notify: sendgrid provider requires an api key")
		}
		return NewSendGridSender(opts.SendGridAPIKey, opts.From), nil
	default:
		return nil, fmt.Errorf("notify: unknown provider %q", opts.Provider)
	}
}

package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/Phanuelx/Education-App/internal/core/ports"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridSender delivers email notifications through the SendGrid v3 API.
type SendGridSender struct {
	key  string
	host string
	from *sgmail.Email
	api  func(ctx context.Context, req rest.Request) (*rest.Response, error)
}

func NewSendGridSender(apiKey string, from Address) *SendGridSender {
	return &SendGridSender{
		key:  apiKey,
		host: sendgridHost,
		from: sgmail.NewEmail(from.Name, from.Address),
		api:  rest.SendWithContext,
	}
}

func (s *SendGridSender) Send(ctx context.Context, n ports.Notification) error {
	if n.Channel != ports.ChannelEmail {
		return fmt.Errorf("sendgrid: unsupported channel %q", n.Channel)
	}

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, s.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(n))

	res, err := s.api(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

func (s *SendGridSender) prepare(n ports.Notification) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = n.Subject
	p.AddTos(sgmail.NewEmail("", n.To))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", n.Text))
	if n.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", n.HTML))
	}
	return m
}

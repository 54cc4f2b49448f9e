package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/Theijiii/plms-sys-sub004/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	portalURL   string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, portalURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		portalURL:   portalURL,
	}, nil
}

func (s *sesSender) SendDecisionEmail(ctx context.Context, msg port.DecisionEmail) error {
	subject := fmt.Sprintf("Permit application %s: %s", msg.ReferenceNo, msg.StatusLabel)
	htmlBody := buildDecisionHTML(msg, s.portalURL)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nYour permit application %s is now %s.\n",
		msg.ToName, msg.ReferenceNo, msg.StatusLabel)
	if msg.Notes != "" {
		textBody += fmt.Sprintf("\nReviewer remarks:\n%s\n", msg.Notes)
	}
	textBody += fmt.Sprintf("\nTrack your application at %s\n", s.portalURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sending decision email: %w", err)
	}
	return nil
}

func buildDecisionHTML(msg port.DecisionEmail, portalURL string) string {
	notes := ""
	if msg.Notes != "" {
		notes = fmt.Sprintf("<p><strong>Reviewer remarks:</strong><br>%s</p>", html.EscapeString(msg.Notes))
	}
	return fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Your permit application <strong>%s</strong> is now <strong>%s</strong>.</p>
%s
<p><a href="%s">Track your application</a></p>
</body></html>`,
		html.EscapeString(msg.ToName),
		html.EscapeString(msg.ReferenceNo),
		html.EscapeString(msg.StatusLabel),
		notes,
		html.EscapeString(portalURL))
}

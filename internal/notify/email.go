package notify

import (
	"context"
	"errors"
	"html"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/smithy-go"
	"github.com/hashicorp/go-hclog"
)

const charset = "UTF-8"

const (
	htmlHead = "<html>\n<head></head>\n<body>\n<p style=\"font-family:Georgia;font-size:15px\">"
	htmlTail = "</p>\n</body>\n</html>\n"
)

// EmailAPI is the subset of the SES v2 client used by EmailNotifier.
type EmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

var _ EmailAPI = (*sesv2.Client)(nil)

// EmailNotifier sends each alert as an email with a text and an HTML body.
type EmailNotifier struct {
	api       EmailAPI
	sender    string
	recipient string
	logger    hclog.Logger
}

// NewEmailNotifier creates an EmailNotifier sending from sender to recipient.
func NewEmailNotifier(api EmailAPI, sender, recipient string, logger hclog.Logger) (*EmailNotifier, error) {
	if sender == "" || recipient == "" {
		return nil, errors.New("email notifier needs both a sender and a recipient")
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &EmailNotifier{api: api, sender: sender, recipient: recipient, logger: logger}, nil
}

// Notify implements Notifier.
func (n *EmailNotifier) Notify(ctx context.Context, subject, message string) {
	out, err := n.api.SendEmail(ctx, n.input(subject, message))
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			n.logger.Error("failed to send notification", "subject", subject, "code", apiErr.ErrorCode(), "error", apiErr.ErrorMessage())
			return
		}
		n.logger.Error("failed to send notification", "subject", subject, "error", err)
		return
	}

	if out != nil && out.MessageId != nil {
		n.logger.Debug("sent notification", "subject", subject, "message_id", *out.MessageId)
	}
}

func (n *EmailNotifier) input(subject, message string) *sesv2.SendEmailInput {
	return &sesv2.SendEmailInput{
		FromEmailAddress: &n.sender,
		Destination: &types.Destination{
			ToAddresses: []string{n.recipient},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: content(subject),
				Body: &types.Body{
					Text: content(message),
					Html: content(HTMLBody(message)),
				},
			},
		},
	}
}

// HTMLBody renders message as the HTML part of an alert email.
func HTMLBody(message string) string {
	return htmlHead + html.EscapeString(message) + htmlTail
}

func content(s string) *types.Content {
	cs := charset
	return &types.Content{Data: &s, Charset: &cs}
}

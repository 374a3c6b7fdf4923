package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEmailAPI struct {
	sendEmailFunc func(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
	inputs        []*sesv2.SendEmailInput
}

func (m *mockEmailAPI) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.sendEmailFunc != nil {
		return m.sendEmailFunc(ctx, params, optFns...)
	}
	id := "msg-1"
	return &sesv2.SendEmailOutput{MessageId: &id}, nil
}

type recorder struct {
	subjects []string
}

func (r *recorder) Notify(_ context.Context, subject, _ string) {
	r.subjects = append(r.subjects, subject)
}

func TestNewEmailNotifierRequiresAddresses(t *testing.T) {
	_, err := NewEmailNotifier(&mockEmailAPI{}, "", "owner@example.com", nil)
	require.Error(t, err)
	_, err = NewEmailNotifier(&mockEmailAPI{}, "bot@example.com", "", nil)
	require.Error(t, err)
}

func TestEmailNotifierSends(t *testing.T) {
	api := &mockEmailAPI{}
	n, err := NewEmailNotifier(api, "bot@example.com", "owner@example.com", nil)
	require.NoError(t, err)

	msg := "Invalid hex color code found in palette, 'A & B'. The hex code is 'zz0000'."
	n.Notify(context.Background(), "Invalid Hex Code", msg)

	require.Len(t, api.inputs, 1)
	in := api.inputs[0]
	assert.Equal(t, "bot@example.com", *in.FromEmailAddress)
	assert.Equal(t, []string{"owner@example.com"}, in.Destination.ToAddresses)

	simple := in.Content.Simple
	require.NotNil(t, simple)
	assert.Equal(t, "Invalid Hex Code", *simple.Subject.Data)
	assert.Equal(t, "UTF-8", *simple.Subject.Charset)
	assert.Equal(t, msg, *simple.Body.Text.Data)
	assert.Contains(t, *simple.Body.Html.Data, `<p style="font-family:Georgia;font-size:15px">`)
	assert.Contains(t, *simple.Body.Html.Data, "&#39;A &amp; B&#39;")
}

func TestEmailNotifierSwallowsErrors(t *testing.T) {
	for _, sendErr := range []error{
		&smithy.GenericAPIError{Code: "MessageRejected", Message: "Email address is not verified."},
		errors.New("network down"),
	} {
		api := &mockEmailAPI{
			sendEmailFunc: func(context.Context, *sesv2.SendEmailInput, ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
				return nil, sendErr
			},
		}
		n, err := NewEmailNotifier(api, "a@example.com", "b@example.com", nil)
		require.NoError(t, err)

		assert.NotPanics(t, func() { n.Notify(context.Background(), "s", "m") })
		assert.Len(t, api.inputs, 1)
	}
}

func TestHTMLBody(t *testing.T) {
	got := HTMLBody("<b>hi</b>")
	assert.Equal(t,
		"<html>\n<head></head>\n<body>\n<p style=\"font-family:Georgia;font-size:15px\">&lt;b&gt;hi&lt;/b&gt;</p>\n</body>\n</html>\n",
		got)
}

func TestMulti(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Multi{a, NewLogNotifier(nil), b}.Notify(context.Background(), "subject", "message")

	assert.Equal(t, []string{"subject"}, a.subjects)
	assert.Equal(t, []string{"subject"}, b.subjects)
}

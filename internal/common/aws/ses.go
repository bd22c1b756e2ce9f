// internal/common/aws/ses.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESClient sends plain-text mail from a fixed sender.
type SESClient struct {
	client sesAPI
	from   string
}

func NewSESClient(ctx context.Context, region, from string) (*SESClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESClient{client: ses.NewFromConfig(cfg), from: from}, nil
}

// Email is a single plain-text message.
type Email struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Send delivers the message and returns the SES message id.
func (s *SESClient) Send(ctx context.Context, email Email) (string, error) {
	input := &ses.SendEmailInput{
		Source: awssdk.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{email.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(email.Subject), Charset: awssdk.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: awssdk.String(email.Body), Charset: awssdk.String("UTF-8")},
			},
		},
	}
	if email.ReplyTo != "" {
		input.ReplyToAddresses = []string{email.ReplyTo}
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return "", fmt.Errorf("ses send to %s: %w", email.To, err)
	}
	return awssdk.ToString(out.MessageId), nil
}

package ses

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/go-notes-api/internal/config"
)

// Mailer sends transactional email. Delivery is an external collaborator:
// implementations either succeed or return an error, nothing in between.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type sender struct {
	client *sesv2.Client
	from   string
}

// NewSender creates an AWS SES mailer.
func NewSender(cfg *config.Config) (Mailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SESRegion),
	)
	if err != nil {
		return nil, err
	}
	return &sender{client: sesv2.NewFromConfig(awsCfg), from: cfg.EmailFrom}, nil
}

func (s *sender) SendEmail(ctx context.Context, to, subject, body string) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &s.from,
		Destination:      &sestypes.Destination{ToAddresses: []string{to}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: &subject},
				Body:    &sestypes.Body{Text: &sestypes.Content{Data: &body}},
			},
		},
	})
	return err
}

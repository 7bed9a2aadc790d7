package service

import (
	"context"
	"errors"
	"fmt"

	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/middleware"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesSender は sesv2.Client のうち送信だけを切り出したもの
type sesSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESMailer は AWS SES v2 で送る
type SESMailer struct {
	client sesSender
	from   string
}

// NewSESMailer は ses.auth_type に応じて認証情報の取り方を切り替える。
func NewSESMailer(ctx context.Context, cfg *config.SESConfig) (*SESMailer, error) {
	if cfg.From == "" {
		return nil, errors.New("NewSESMailer: ses.from is empty")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	switch cfg.AuthType {
	case "static_credentials":
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return nil, errors.New("NewSESMailer: static_credentials requires access_key_id and secret_access_key")
		}
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	case "", "iam_role":
		// 既定の credential chain (IAM ロール、環境変数) を使う
	default:
		return nil, fmt.Errorf("NewSESMailer: unknown auth_type %q", cfg.AuthType)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewSESMailer: load aws config: %w", err)
	}
	return &SESMailer{client: sesv2.NewFromConfig(awsCfg), from: cfg.From}, nil
}

func newSESMailerWithClient(client sesSender, from string) *SESMailer {
	return &SESMailer{client: client, from: from}
}

func buildSESInput(from, to, subject, body string) *sesv2.SendEmailInput {
	utf8 := func(s string) *types.Content {
		return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
	}
	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: utf8(subject),
				Body:    &types.Body{Text: utf8(body)},
			},
		},
	}
}

func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)

	out, err := m.client.SendEmail(ctx, buildSESInput(m.from, to, subject, body))
	if err != nil {
		logger.Error("Failed to send email via SES", "error", err)
		return fmt.Errorf("SESMailer.Send: %w", err)
	}

	logger.Info("Email sent via SES", "message_id", aws.ToString(out.MessageId))
	return nil
}

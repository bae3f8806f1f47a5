package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers mail over an authenticated SMTP connection.
type SMTPSender struct {
	config  Config
	options []gomail.Option
	host    string
}

// NewSMTPSender validates the transport settings. No connection is made
// until the first send.
func NewSMTPSender(cfg Config, smtpCfg SMTPConfig) (*SMTPSender, error) {
	if smtpCfg.Host == "" {
		return nil, fmt.Errorf("%w: SMTP host is required", ErrInvalidConfig)
	}
	if smtpCfg.Port <= 0 {
		return nil, fmt.Errorf("%w: SMTP port must be positive", ErrInvalidConfig)
	}
	if err := validateSender(cfg); err != nil {
		return nil, err
	}

	var opts []gomail.Option
	switch strings.ToLower(smtpCfg.TLS) {
	case "ssl", "":
		opts = append(opts, gomail.WithSSL())
	case "starttls":
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	case "none":
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	default:
		return nil, fmt.Errorf("%w: unknown SMTP TLS mode %q", ErrInvalidConfig, smtpCfg.TLS)
	}
	if smtpCfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(smtpCfg.Username),
			gomail.WithPassword(smtpCfg.Password),
		)
	}
	if smtpCfg.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(smtpCfg.Timeout))
	}
	// port last, the TLS options above may reset it
	opts = append(opts, gomail.WithPort(smtpCfg.Port))

	return &SMTPSender{
		config:  cfg,
		options: opts,
		host:    smtpCfg.Host,
	}, nil
}

// Message builds the MIME message for params.
func (s *SMTPSender) Message(params SendEmailParams) (*gomail.Msg, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	msg := gomail.NewMsg()
	msg.SetCharset(gomail.CharsetUTF8)

	if err := msg.FromFormat(params.FromName, s.config.SenderEmail); err != nil {
		return nil, fmt.Errorf("%w: from: %v", ErrInvalidParams, err)
	}
	if err := msg.AddToFormat(params.SendToName, strings.TrimSpace(params.SendTo)); err != nil {
		return nil, fmt.Errorf("%w: to: %v", ErrInvalidParams, err)
	}
	if len(params.Bcc) > 0 {
		if err := msg.Bcc(params.Bcc...); err != nil {
			return nil, fmt.Errorf("%w: bcc: %v", ErrInvalidParams, err)
		}
	}
	if s.config.SupportEmail != "" {
		if err := msg.ReplyTo(s.config.SupportEmail); err != nil {
			return nil, fmt.Errorf("%w: reply-to: %v", ErrInvalidParams, err)
		}
	}
	msg.Subject(params.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, params.BodyHTML)

	return msg, nil
}

func (s *SMTPSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	msg, err := s.Message(params)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(s.host, s.options...)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}

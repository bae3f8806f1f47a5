package email

import (
	"fmt"
	"time"
)

const (
	DriverSMTP     = "smtp"
	DriverPostmark = "postmark"
	DriverDev      = "dev"
)

// Config selects the mail driver and the sender identity.
// SupportEmail, when set, becomes the Reply-To of outgoing mail.
type Config struct {
	Driver               string `env:"MAIL_DRIVER" envDefault:"smtp"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL"`
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	DevDir               string `env:"MAIL_DEV_DIR" envDefault:"./tmp/mail"`
}

// SMTPConfig configures the authenticated SMTP transport.
type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST"`
	Port     int           `env:"SMTP_PORT" envDefault:"465"`
	Username string        `env:"SMTP_USER"`
	Password string        `env:"SMTP_PASS"`
	TLS      string        `env:"SMTP_TLS" envDefault:"ssl"` // ssl, starttls or none
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
}

// New returns the sender for cfg.Driver.
func New(cfg Config, smtpCfg SMTPConfig) (EmailSender, error) {
	switch cfg.Driver {
	case DriverSMTP, "":
		s, err := NewSMTPSender(cfg, smtpCfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostmark:
		return NewPostmarkClient(cfg)
	case DriverDev:
		return NewDevSender(cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("%w: unknown mail driver %q", ErrInvalidConfig, cfg.Driver)
	}
}

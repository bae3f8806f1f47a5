package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formintake/internal/submission"
	"github.com/dmitrymomot/formintake/pkg/email"
	"github.com/dmitrymomot/formintake/pkg/email/templates"
	"github.com/dmitrymomot/formintake/pkg/logger"
)

// Job is the pair of emails sent for one stored submission.
type Job struct {
	Admin     email.SendEmailParams
	Submitter email.SendEmailParams
}

// Notifier sends the administrator and submitter confirmation emails.
type Notifier struct {
	mailer email.EmailSender
	cfg    Config
	log    *slog.Logger
}

type Option func(*Notifier)

func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.log = l
		}
	}
}

func New(mailer email.EmailSender, cfg Config, opts ...Option) *Notifier {
	n := &Notifier{mailer: mailer, cfg: cfg, log: logger.Discard()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SendBoth sends the admin email, then the submitter email. The first
// failure stops and is returned as submission.NotificationFailed.
func (n *Notifier) SendBoth(ctx context.Context, sub submission.Submission) error {
	log := n.log.With(logger.Component("notify"), logger.Form(string(sub.Form.Type)))

	job, err := n.Job(ctx, sub)
	if err != nil {
		log.ErrorContext(ctx, "failed to build emails", logger.Error(err))
		return submission.NotificationFailed(err)
	}

	for _, msg := range []email.SendEmailParams{job.Admin, job.Submitter} {
		if err := n.send(ctx, msg); err != nil {
			log.ErrorContext(ctx, "failed to send email",
				logger.Event(msg.Tag),
				logger.Error(err),
			)
			return submission.NotificationFailed(err)
		}
	}

	log.InfoContext(ctx, "confirmation emails sent", slog.Int64("id", sub.Record.ID))
	return nil
}

func (n *Notifier) send(ctx context.Context, msg email.SendEmailParams) error {
	if n.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.cfg.SendTimeout)
		defer cancel()
	}
	return n.mailer.SendEmail(ctx, msg)
}

// Job renders both emails for sub without sending them.
func (n *Notifier) Job(ctx context.Context, sub submission.Submission) (Job, error) {
	site := n.cfg.SiteName

	var (
		formName      string
		adminBody     templ.Component
		submitterBody templ.Component
		bcc           []string
	)
	switch sub.Form.Type {
	case submission.Contact:
		formName = "Contact"
		adminBody = contactAdminEmail(sub.Fields)
		submitterBody = contactSubmitterEmail(site, sub.Fields)
	case submission.Application:
		formName = "Application"
		adminBody = applicationAdminEmail(sub)
		submitterBody = applicationSubmitterEmail(site, sub)
		bcc = n.cfg.ApplicationBCC
	default:
		return Job{}, fmt.Errorf("notify: unknown form type %q", sub.Form.Type)
	}

	adminHTML, err := templates.Render(ctx, adminBody)
	if err != nil {
		return Job{}, fmt.Errorf("notify: render admin email: %w", err)
	}
	submitterHTML, err := templates.Render(ctx, submitterBody)
	if err != nil {
		return Job{}, fmt.Errorf("notify: render submitter email: %w", err)
	}

	fromName := site + " " + formName + " Form"
	tag := string(sub.Form.Type)

	return Job{
		Admin: email.SendEmailParams{
			FromName: fromName,
			SendTo:   n.cfg.AdminEmail,
			Bcc:      bcc,
			Subject:  "New " + formName + " Form Submission - " + site,
			BodyHTML: adminHTML,
			Tag:      tag + "_admin",
		},
		Submitter: email.SendEmailParams{
			FromName:   fromName,
			SendTo:     sub.Fields.String("email"),
			SendToName: sub.Fields.String("fullName"),
			Bcc:        bcc,
			Subject:    "Thanks for contacting " + site + "!",
			BodyHTML:   submitterHTML,
			Tag:        tag + "_submitter",
		},
	}, nil
}

// Package email sends transactional HTML email through a provider-agnostic
// EmailSender.
//
// Three drivers are available, picked by Config.Driver (MAIL_DRIVER):
//   - SMTPSender delivers over authenticated SMTP (SSL, STARTTLS or plain)
//     using go-mail;
//   - the Postmark client uses the Postmark transactional API;
//   - DevSender writes every message to disk as .html and .json files.
//
// All drivers validate SendEmailParams before doing any I/O and report
// delivery failures wrapped in ErrFailedToSendEmail:
//
//	sender, err := email.New(cfg, smtpCfg)
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		FromName:   "Acme Contact Form",
//		SendTo:     "jane@example.com",
//		SendToName: "Jane",
//		Subject:    "Thanks!",
//		BodyHTML:   html,
//	})
//
// Bodies are usually templ components rendered with templates.Render.
package email

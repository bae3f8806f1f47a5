package notify

import "time"

type Config struct {
	SiteName string `env:"SITE_NAME" envDefault:"Chef Master Africa"`
	// AdminEmail receives the administrator copy. Defaults to the sender address.
	AdminEmail string `env:"NOTIFY_ADMIN_EMAIL"`
	// ApplicationBCC is blind-copied on both application form emails.
	ApplicationBCC []string      `env:"NOTIFY_APPLICATION_BCC" envSeparator:","`
	SendTimeout    time.Duration `env:"NOTIFY_SEND_TIMEOUT" envDefault:"30s"`
}

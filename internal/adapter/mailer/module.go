package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/electrohub/internal/config"
)

// Module exposes the mail sender; without MAIL_API_URL messages are only logged.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	if p.Config.MailAPIURL == "" {
		p.Logger.Info("mail api not configured, emails will be logged")
		return NewLogSender(p.Logger), nil
	}
	return NewHTTPSender(p.Config.MailAPIURL, p.Config.MailAPIKey, p.Config.MailFrom, p.Logger)
}

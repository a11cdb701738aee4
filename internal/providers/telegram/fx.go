package telegram

import (
	"github.com/veriscan/casedesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.telegram",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config, log *zap.Logger) Provider {
	if cfg.TelegramBotToken == "" {
		log.Warn("telegram bot token not configured, alerts will be dropped")
		return &NoOpProvider{}
	}
	return NewBotClient(cfg.TelegramBotToken)
}

package telegram

import (
	"context"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"atmo-monitor/internal/domain"
	"atmo-monitor/internal/infra/metrics"
)

// OpsNotifier шлёт служебные сообщения дежурным в Telegram-чат.
// Ошибки отправки логируются и никогда не доходят до цикла мониторинга.
type OpsNotifier struct {
	log    zerolog.Logger
	bot    *tgbotapi.BotAPI
	chatID int64
}

var _ domain.OpsNotifier = (*OpsNotifier)(nil)

// NewOpsNotifier создаёт уведомителя. Пустой токен или нулевой чат означают,
// что канал не настроен: возвращается no-op.
func NewOpsNotifier(token string, chatID int64, logger zerolog.Logger) *OpsNotifier {
	if token == "" || chatID == 0 {
		logger.Debug().Msg("ops: telegram-канал не настроен, уведомления пропускаются")
		return &OpsNotifier{log: logger}
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error().Err(err).Msg("ops: не удалось создать бота, уведомления пропускаются")
		return &OpsNotifier{log: logger}
	}
	return &OpsNotifier{log: logger, bot: bot, chatID: chatID}
}

// Notify отправляет текст в чат дежурных.
func (n *OpsNotifier) Notify(ctx context.Context, text string) {
	if n == nil || n.bot == nil {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	start := time.Now()
	_, err := n.bot.Send(msg)
	metrics.ObserveNetworkRequest("telegram_bot", "send_message", strconv.FormatInt(n.chatID, 10), start, err)
	if err != nil {
		n.log.Error().Err(err).Int64("chat", n.chatID).Msg("ops: не удалось отправить сообщение")
	}
}

package worker

// notify_worker.go
// Processes invoice-delivery jobs from QueueNotify: posts the generated
// invoice PDF to the messaging bot API through the circuit breaker.
// A failed delivery lands in the DLQ and never affects the originating
// request.

import (
	"context"
	"encoding/json"

	"gamehouse/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NotifyJobPayload is the job envelope sent to QueueNotify.
type NotifyJobPayload struct {
	ChatID   string `json:"chat_id"`
	Caption  string `json:"caption"`
	FilePath string `json:"file_path"`
}

// NotifyWorker delivers invoice documents via the bot API.
type NotifyWorker struct {
	bot *infra.BotClient
	cb  *infra.CircuitBreaker
	rdb *redis.Client
}

func NewNotifyWorker(bot *infra.BotClient, cb *infra.CircuitBreaker, rdb *redis.Client) *NotifyWorker {
	return &NotifyWorker{bot: bot, cb: cb, rdb: rdb}
}

// Process posts the document to the bot API.
func (w *NotifyWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NotifyJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notify_worker: invalid payload")
		return
	}
	if payload.ChatID == "" {
		log.Warn().Msg("notify_worker: empty chat_id, skipping")
		return
	}

	err := w.cb.Execute(func() error {
		return w.bot.SendDocument(ctx, payload.ChatID, payload.Caption, payload.FilePath)
	})
	if err != nil {
		log.Error().Err(err).Str("chat_id", payload.ChatID).Msg("notify_worker: delivery failed")
		SendToDLQ(ctx, w.rdb, QueueNotify, "notify", raw, err.Error(), 1)
		return
	}
	log.Info().Str("chat_id", payload.ChatID).Msg("notify_worker: invoice delivered")
}

package bot

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/loguncov/telegram-salon-mvp/config"
)

// Bot is the Telegram front-end. It carries no business logic: /start
// answers with a single button that opens the mini-app.
type Bot struct {
	api       *tgbotapi.BotAPI
	webAppURL string
}

func New(token, webAppURL string) (*Bot, error) {
	// Telegram opens web apps over HTTPS only.
	if !strings.HasPrefix(webAppURL, "https://") {
		log.Printf("[WARN] WEB_APP_URL must be HTTPS, got %q; using fallback %s",
			webAppURL, config.FallbackWebAppURL)
		webAppURL = config.FallbackWebAppURL
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("Authorized on Telegram account %s", api.Self.UserName)

	return &Bot{api: api, webAppURL: webAppURL}, nil
}

// Start runs the long-polling loop until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if update.Message.Command() == "start" {
				b.handleStart(update.Message)
			}
		}
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.InlineKeyboardButton{
				Text:   "💅 Открыть приложение",
				WebApp: &tgbotapi.WebAppInfo{URL: b.webAppURL},
			},
		),
	)

	reply := tgbotapi.NewMessage(msg.Chat.ID, "Открой приложение салона:")
	reply.ReplyMarkup = kb
	if _, err := b.api.Send(reply); err != nil {
		log.Printf("Failed to answer /start for chat %d: %v", msg.Chat.ID, err)
	}
}

// Notify implements services.TelegramNotifier for the reminder scheduler.
func (b *Bot) Notify(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// Package telegram connects the bot service to the Telegram API.
// It resolves every command's sender and chat into a (member, group)
// context, routes commands to the service handlers, and sends the
// resulting text back to the chat.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gastobot/internal/metrics"
	"gastobot/internal/models"
	"gastobot/internal/service"
	"gastobot/internal/storage"
)

const (
	unknownCommandMessage = "Sorry, I don't understand that command."
	internalErrorMessage  = "Something went wrong on my side, please try again."
)

// Context carries the resolved sender and chat for one message.
type Context struct {
	Member *models.Member
	Group  *models.Group
}

// Gateway polls Telegram for updates and dispatches commands.
type Gateway struct {
	api   *tgbotapi.BotAPI
	bot   *service.Bot
	store storage.Store
}

// New connects to Telegram with the given token.
func New(token string, bot *service.Bot, store storage.Store) (*Gateway, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	slog.Info("Connected to Telegram", "username", api.Self.UserName)
	return &Gateway{api: api, bot: bot, store: store}, nil
}

// Run polls for updates until the context is cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := g.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			g.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			g.handleMessage(ctx, update.Message)
		}
	}
}

func (g *Gateway) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	// Free-text messages are echoed back verbatim.
	if !msg.IsCommand() {
		if msg.Text != "" {
			g.reply(msg.Chat.ID, msg.Text)
		}
		return
	}

	command := msg.Command()
	metrics.Commands.WithLabelValues(commandLabel(command)).Inc()
	slog.Info("Command received", "command", command, "chat_id", msg.Chat.ID)

	cc, err := g.resolve(ctx, msg)
	if err != nil {
		slog.Error("Failed to resolve sender", "chat_id", msg.Chat.ID, "error", err)
		g.reply(msg.Chat.ID, internalErrorMessage)
		return
	}

	var text string
	switch command {
	case "start":
		text = g.bot.HandleStart(cc.Member)
	case "gasto", "g":
		text, err = g.bot.HandleNewExpense(ctx, strings.Fields(msg.CommandArguments()), cc.Member, cc.Group)
	case "total":
		text, err = g.bot.HandleReport(ctx, cc.Group)
	default:
		text = unknownCommandMessage
	}
	if err != nil {
		slog.Error("Command handling failed", "command", command, "error", err)
		text = internalErrorMessage
	}

	g.reply(msg.Chat.ID, text)
}

// resolve maps the message's sender and chat onto stored member and group
// records, creating them on first sight and keeping the association fresh.
func (g *Gateway) resolve(ctx context.Context, msg *tgbotapi.Message) (*Context, error) {
	from := msg.From
	if from == nil {
		return nil, errors.New("message has no sender")
	}

	username := from.UserName
	if username == "" {
		username = from.FirstName
	}
	member, err := g.store.GetOrCreateMember(ctx, storage.MemberIdentity{
		ChatID:    from.ID,
		Username:  username,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve member: %w", err)
	}

	name := msg.Chat.Title
	if name == "" {
		name = username + "__private"
	}
	group, err := g.store.GetOrCreateGroup(ctx, storage.GroupIdentity{
		ChatID: msg.Chat.ID,
		Name:   name,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve group: %w", err)
	}

	if err := g.store.AddMemberToGroup(ctx, member.ID, group.ID); err != nil {
		return nil, fmt.Errorf("associate member with group: %w", err)
	}

	return &Context{Member: member, Group: group}, nil
}

func (g *Gateway) reply(chatID int64, text string) {
	if _, err := g.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}

func commandLabel(command string) string {
	switch command {
	case "start", "gasto", "g", "total":
		return command
	default:
		return "unknown"
	}
}

// Package notify alerts staff channels about standing escalations.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/event"
	"github.com/osse101/modstanding/internal/logger"
)

// Embed appearance
const (
	colorHabitual = 0xE74C3C
	embedTitle    = "Player reached Habitual standing"
	embedFooter   = "Standing recomputed from full punishment history"
	webhookName   = "Moderation Standing"
)

// Log and error messages
const (
	LogMsgAlertSent        = "Standing alert sent"
	LogMsgAlertFailed      = "Failed to send standing alert"
	LogMsgPayloadInvalid   = "Could not decode standing change payload"
	LogMsgNotifierDisabled = "Discord notifier disabled: webhook credentials not configured"
	ErrMsgCreateSession    = "create discord session: %w"
	ErrMsgExecuteWebhook   = "execute discord webhook: %w"
)

// webhookExecutor is the part of *discordgo.Session the notifier uses
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Config holds Discord webhook credentials. BotToken is optional.
type Config struct {
	BotToken     string
	WebhookID    string
	WebhookToken string
}

// Enabled reports whether enough credentials are present to post alerts
func (c Config) Enabled() bool {
	return c.WebhookID != "" && c.WebhookToken != ""
}

// DiscordNotifier posts an embed when a player escalates to Habitual in any category
type DiscordNotifier struct {
	client       webhookExecutor
	webhookID    string
	webhookToken string
}

// NewDiscordNotifier creates a notifier. It returns nil, nil when cfg is not enabled.
func NewDiscordNotifier(cfg Config) (*DiscordNotifier, error) {
	if !cfg.Enabled() {
		logger.Info(LogMsgNotifierDisabled)
		return nil, nil
	}
	token := ""
	if cfg.BotToken != "" {
		token = "Bot " + cfg.BotToken
	}
	session, err := discordgo.New(token)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateSession, err)
	}
	return newDiscordNotifier(session, cfg), nil
}

func newDiscordNotifier(client webhookExecutor, cfg Config) *DiscordNotifier {
	return &DiscordNotifier{
		client:       client,
		webhookID:    cfg.WebhookID,
		webhookToken: cfg.WebhookToken,
	}
}

// Subscribe registers the notifier for standing changes
func (n *DiscordNotifier) Subscribe(bus event.Bus) {
	bus.Subscribe(event.StandingChanged, n.HandleStandingChanged)
}

// HandleStandingChanged posts an alert for escalations into Habitual.
// Delivery problems are logged, never returned, so the publisher does not retry the whole event.
func (n *DiscordNotifier) HandleStandingChanged(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[domain.StandingChangedPayload](evt.Payload)
	if err != nil {
		log.Warn(LogMsgPayloadInvalid, "error", err)
		return nil
	}
	if !payload.Escalated || domain.StatusTier(payload.Status) != domain.StatusHabitual {
		return nil
	}

	if err := n.send(payload); err != nil {
		log.Error(LogMsgAlertFailed, logger.AttrKeyPlayerID, payload.PlayerID, "error", err)
		return nil
	}
	log.Info(LogMsgAlertSent, logger.AttrKeyPlayerID, payload.PlayerID, logger.AttrKeyCategory, payload.Category)
	return nil
}

func (n *DiscordNotifier) send(p domain.StandingChangedPayload) error {
	_, err := n.client.WebhookExecute(n.webhookID, n.webhookToken, false, &discordgo.WebhookParams{
		Username: webhookName,
		Embeds:   []*discordgo.MessageEmbed{BuildEmbed(p)},
	})
	if err != nil {
		return fmt.Errorf(ErrMsgExecuteWebhook, err)
	}
	return nil
}

// BuildEmbed renders a standing change for staff
func BuildEmbed(p domain.StandingChangedPayload) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: embedTitle,
		Color: colorHabitual,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Player", Value: p.PlayerID, Inline: true},
			{Name: "Category", Value: p.Category, Inline: true},
			{Name: "Points", Value: fmt.Sprintf("%d", p.Points), Inline: true},
			{Name: "Tier", Value: fmt.Sprintf("%s → %s", p.PreviousStatus, p.Status)},
		},
		Timestamp: time.UnixMilli(p.Timestamp).UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: embedFooter},
	}
}

package config

import (
	"fmt"
	"strings"
)

// Example values shipped in .env.example that must not reach production
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// Warnings reports non-fatal configuration problems worth logging at startup
func (c *Config) Warnings() []string {
	var warnings []string

	if c.DBPassword == exampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if c.APIKey == exampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if (c.DiscordWebhookID == "") != (c.DiscordWebhookToken == "") {
		warnings = append(warnings, "only one of DISCORD_WEBHOOK_ID and DISCORD_WEBHOOK_TOKEN is set - escalation alerts are disabled")
	}

	if c.EventTransport == EventTransportMemory && (c.NATSURL != "" || len(c.KafkaBrokers) > 0) {
		warnings = append(warnings, "NATS_URL or KAFKA_BROKERS is set but EVENT_TRANSPORT=memory - events stay in-process")
	}

	if strings.EqualFold(c.Environment, "prod") && c.LogFormat != "json" {
		warnings = append(warnings, fmt.Sprintf("LOG_FORMAT=%s in prod - structured json logs are recommended", c.LogFormat))
	}

	return warnings
}

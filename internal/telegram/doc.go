// Package telegram sends plain-text messages through the Telegram Bot API.
//
// Authentication requires a bot token (from @BotFather) and a chat ID.
package telegram

// Package notifier delivers rendered reports to chat channels.
//
// Implementations post to a Discord webhook, a Telegram chat, or print to stdout in
// dry-run mode. Consecutive messages are paced with a token-bucket limiter so a long
// report split into several chunks stays under the channel's rate limits.
package notifier

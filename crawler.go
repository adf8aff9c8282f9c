package findable

import "strings"

// aiCrawlers are user-agent substrings of AI crawlers and generic bots.
// Generic tokens come last.
var aiCrawlers = []string{
	"gptbot",
	"chatgpt",
	"anthropic-ai",
	"claude",
	"google-ai",
	"googlebot",
	"bingbot",
	"ccbot",
	"facebookexternalhit",
	"linkedinbot",
	"twitterbot",
	"slackbot",
	"whatsapp",
	"telegrambot",
	"discordbot",
	"crawler",
	"spider",
	"bot",
}

// IsAICrawler reports whether userAgent belongs to a known AI crawler or bot.
func IsAICrawler(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, c := range aiCrawlers {
		if strings.Contains(ua, c) {
			return true
		}
	}
	return false
}

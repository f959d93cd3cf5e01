// ABOUTME: Response policy deciding cache-control per response class and classifying bot traffic
// ABOUTME: Rewritten HTML is never edge-cached; JSON surfaces get class-specific public TTLs

package policy

import "strings"

// Response classes, each with its own caching contract.
type Class int

const (
	// ClassRewrittenHTML is a transformed document: injected content is
	// per-entity and must never be served stale to another entity's URL.
	ClassRewrittenHTML Class = iota
	// ClassEntityJSON covers the format=json entity documents.
	ClassEntityJSON
	// ClassDiscovery covers the curator discovery endpoint.
	ClassDiscovery
	// ClassSearch covers the search proxy.
	ClassSearch
	// ClassSitemap covers the sitemap document.
	ClassSitemap
	// ClassRobots covers robots.txt.
	ClassRobots
	// ClassTextFile covers llms.txt, articles.txt and similar agents-facing text.
	ClassTextFile
)

var cacheControl = map[Class]string{
	ClassRewrittenHTML: "no-cache, must-revalidate",
	ClassEntityJSON:    "public, max-age=300",
	ClassDiscovery:     "public, max-age=600",
	ClassSearch:        "public, max-age=300, stale-while-revalidate=600",
	ClassSitemap:       "public, max-age=3600, stale-while-revalidate=86400",
	ClassRobots:        "public, max-age=86400",
	ClassTextFile:      "public, max-age=3600",
}

// CacheControl returns the Cache-Control value for a response class.
func CacheControl(c Class) string {
	return cacheControl[c]
}

// DefaultBotAgents are the crawler and social-preview user-agent
// fragments served prerendered metadata pages.
var DefaultBotAgents = []string{
	"facebookexternalhit",
	"Facebot",
	"Twitterbot",
	"LinkedInBot",
	"WhatsApp",
	"Slackbot",
	"TelegramBot",
	"Discordbot",
	"Pinterest",
	"Googlebot",
	"bingbot",
	"Applebot",
}

// BotDetector classifies requests by user agent. The agent list is
// injected so tests can substitute fixtures.
type BotDetector struct {
	agents []string
}

// NewBotDetector builds a detector over the given agent fragments,
// falling back to DefaultBotAgents when none are supplied.
func NewBotDetector(agents []string) *BotDetector {
	if len(agents) == 0 {
		agents = DefaultBotAgents
	}
	lowered := make([]string, len(agents))
	for i, a := range agents {
		lowered[i] = strings.ToLower(a)
	}
	return &BotDetector{agents: lowered}
}

// IsBot reports whether the user agent matches any known crawler
// fragment, case-insensitively. An empty user agent is not a bot.
func (d *BotDetector) IsBot(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	ua := strings.ToLower(userAgent)
	for _, a := range d.agents {
		if strings.Contains(ua, a) {
			return true
		}
	}
	return false
}

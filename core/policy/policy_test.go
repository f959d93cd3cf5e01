package policy

import "testing"

func TestCacheControl_RewrittenHTMLNeverCached(t *testing.T) {
	if got := CacheControl(ClassRewrittenHTML); got != "no-cache, must-revalidate" {
		t.Errorf("CacheControl(ClassRewrittenHTML) = %q", got)
	}
}

func TestCacheControl_PublicClasses(t *testing.T) {
	cases := map[Class]string{
		ClassEntityJSON: "public, max-age=300",
		ClassDiscovery:  "public, max-age=600",
		ClassSearch:     "public, max-age=300, stale-while-revalidate=600",
		ClassSitemap:    "public, max-age=3600, stale-while-revalidate=86400",
		ClassRobots:     "public, max-age=86400",
		ClassTextFile:   "public, max-age=3600",
	}
	for class, want := range cases {
		if got := CacheControl(class); got != want {
			t.Errorf("CacheControl(%d) = %q, want %q", class, got, want)
		}
	}
}

func TestBotDetector_KnownAgents(t *testing.T) {
	d := NewBotDetector(nil)

	bots := []string{
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"Twitterbot/1.0",
		"facebookexternalhit/1.1",
		"Mozilla/5.0 (compatible; bingbot/2.0)",
	}
	for _, ua := range bots {
		if !d.IsBot(ua) {
			t.Errorf("IsBot(%q) = false, want true", ua)
		}
	}
}

func TestBotDetector_CaseInsensitive(t *testing.T) {
	d := NewBotDetector(nil)

	if !d.IsBot("GOOGLEBOT/2.1") {
		t.Error("uppercase agent not detected")
	}
}

func TestBotDetector_Humans(t *testing.T) {
	d := NewBotDetector(nil)

	humans := []string{
		"",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 Chrome/120.0 Safari/537.36",
	}
	for _, ua := range humans {
		if d.IsBot(ua) {
			t.Errorf("IsBot(%q) = true, want false", ua)
		}
	}
}

func TestBotDetector_InjectedFixture(t *testing.T) {
	d := NewBotDetector([]string{"testcrawler"})

	if !d.IsBot("TestCrawler/1.0") {
		t.Error("injected agent not detected")
	}
	if d.IsBot("Googlebot/2.1") {
		t.Error("default list leaked into injected detector")
	}
}

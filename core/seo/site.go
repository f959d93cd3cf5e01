// ABOUTME: Public site URL construction for one resolved environment

package seo

// SiteName is the publisher name emitted in tags and structured data.
const SiteName = "Copus"

// Site builds public URLs under one resolved site base.
type Site struct {
	Base string
}

// ArticleURL returns the canonical URL of a work page.
func (s Site) ArticleURL(id string) string {
	return s.Base + "/work/" + id
}

// ProfileURL returns the canonical URL of a curator profile.
func (s Site) ProfileURL(namespace string) string {
	return s.Base + "/user/" + namespace
}

// ShortProfileURL returns the short-form profile URL.
func (s Site) ShortProfileURL(namespace string) string {
	return s.Base + "/u/" + namespace
}

// TreasuryURL returns the canonical URL of a collection page.
func (s Site) TreasuryURL(namespace string) string {
	return s.Base + "/treasury/" + namespace
}

// DiscoveryURL returns the discovery landing page URL.
func (s Site) DiscoveryURL() string {
	return s.Base + "/discovery"
}

// DefaultImage returns the site-wide fallback Open Graph image.
func (s Site) DefaultImage() string {
	return s.Base + "/og-image.jpg"
}

// Logo returns the publisher logo URL.
func (s Site) Logo() string {
	return s.Base + "/logo.png"
}

package api

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// SourceDomain returns the registrable domain of a recipe's source link
// Uses publicsuffix to handle multi-part TLDs like .co.uk
// Examples:
//   - "https://www.bbcgoodfood.com/recipes/x" -> "bbcgoodfood.com"
//   - "http://allrecipes.co.uk/recipe/1" -> "allrecipes.co.uk"
func SourceDomain(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("empty source URL")
	}

	host := rawURL
	if strings.Contains(rawURL, "://") {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		host = parsed.Hostname()
	}
	host = strings.TrimSuffix(strings.ToLower(host), ".")

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("failed to extract domain: %w", err)
	}
	return domain, nil
}

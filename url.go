package findable

import (
	"net/url"
	"strings"
)

// MaxURLLength is the longest URL accepted for analysis.
const MaxURLLength = 2048

// ValidateURL checks that rawURL is a well-formed http(s) URL that is safe
// enough to fetch. It returns an EINVALID error whose message tells the
// user what to correct.
//
// Loopback hosts are allowed for local development and only the 10.* and
// 192.168.* ranges are refused. This is not an SSRF guard; deployments that
// need strict isolation must add an egress allowlist or proxy.
func ValidateURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Errorf(EINVALID, "URL is required")
	}
	if len(rawURL) > MaxURLLength {
		return Errorf(EINVALID, "URL is too long (maximum %d characters)", MaxURLLength)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "Invalid URL format. Please include http:// or https://")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "Only HTTP and HTTPS URLs are allowed")
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "localhost" || host == "127.0.0.1" || host == "0.0.0.0":
		// Allowed for local development.
	case strings.HasPrefix(host, "192.168.") || strings.HasPrefix(host, "10."):
		return Errorf(EINVALID, "Internal/private IP addresses are not allowed")
	}

	return nil
}

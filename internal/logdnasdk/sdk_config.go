package logdnasdk

import (
	"net/url"
	"strings"
)

const DefaultAPIHost = "api.logdna.com"

// Config configures a Client.
type Config struct {
	// APIURL is the scheme and host of the service, e.g. https://api.logdna.com
	APIURL string
	// Signer signs authenticated calls; NewSigner() when nil.
	Signer *Signer
}

func (c *Config) Validate() error {
	if c.APIURL == "" {
		return ErrNoAPIURL
	}

	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrNoAPIURL
	}

	return nil
}

// APIURL builds the service base URL from a host and the TLS switch.
func APIURL(host string, useSSL bool) string {
	if host == "" {
		host = DefaultAPIHost
	}
	if useSSL {
		return "https://" + host
	}
	return "http://" + host
}

// toWebsocketURL converts an HTTP URL to a WebSocket URL
func toWebsocketURL(url string) string {
	if strings.HasPrefix(url, "https://") {
		return "wss://" + url[8:]
	} else if strings.HasPrefix(url, "http://") {
		return "ws://" + url[7:]
	}
	return url
}

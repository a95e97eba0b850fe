package cache

import (
	"io"
	"net/http"
	"net/url"
)

// fetch downloads the configured archive with a single GET request and
// buffers the whole response body in memory. No retry is performed; the
// caller owns retry policy.
func (c *Cache) fetch() ([]byte, error) {
	resp, err := c.httpClient().Get(c.settings.PagesURL)
	if err != nil {
		return nil, wrapUpdateError(err, "could not download archive")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newUpdateErrorf("unexpected response status %d from %s",
			resp.StatusCode, c.settings.PagesURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapUpdateError(err, "could not read archive body")
	}

	c.logger.Debug("archive downloaded", "bytes", len(body), "url", c.settings.PagesURL)
	return body, nil
}

// httpClient builds a client whose per-scheme proxy selection comes from the
// settings. No timeout is configured: the fetch blocks until the whole body
// is received.
func (c *Cache) httpClient() *http.Client {
	httpProxy := c.parseProxy("http", c.settings.HTTPProxy)
	httpsProxy := c.parseProxy("https", c.settings.HTTPSProxy)

	return &http.Client{
		Transport: &http.Transport{
			Proxy: func(req *http.Request) (*url.URL, error) {
				switch req.URL.Scheme {
				case "http":
					return httpProxy, nil
				case "https":
					return httpsProxy, nil
				}
				return nil, nil
			},
		},
	}
}

// parseProxy parses a proxy URL from the settings. Invalid values are
// dropped rather than failing the fetch; proxy misconfiguration is the one
// recoverable error in the update path.
func (c *Cache) parseProxy(scheme, raw string) *url.URL {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		c.logger.Debug("ignoring invalid proxy", "scheme", scheme, "value", raw)
		return nil
	}
	return u
}

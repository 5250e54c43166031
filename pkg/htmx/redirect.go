package htmx

import (
	"net/http"
	"net/url"
	"strings"
)

// RedirectWithStatus redirects plain requests with status and htmx requests
// with the HX-Redirect header.
func RedirectWithStatus(w http.ResponseWriter, r *http.Request, targetURL string, status int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, targetURL)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, targetURL, status)
}

// BackURL returns the local path the request came from, taken from the
// HX-Current-URL or Referer header. Cross-origin or missing values resolve
// to fallback.
func BackURL(r *http.Request, fallback string) string {
	for _, raw := range []string{r.Header.Get(HeaderHXCurrentURL), r.Referer()} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if u.Host != "" && !strings.EqualFold(u.Host, r.Host) {
			continue
		}
		if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
			continue
		}
		back := u.Path
		if u.RawQuery != "" {
			back += "?" + u.RawQuery
		}
		if u.Fragment != "" {
			back += "#" + u.Fragment
		}
		return back
	}
	return fallback
}

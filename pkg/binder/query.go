package binder

import "net/http"

// Query fills fields tagged `query:"name"` from the URL query string.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		values := r.URL.Query()
		return bindTagged(v, "query", ErrFailedToParseQuery, func(name string) []string {
			return values[name]
		})
	}
}

package oauth

import "log/slog"

// redacted wraps a credential so that it never reaches log output. The
// authorization code and tokens are logged through it.
type redacted string

// LogValue implements slog.LogValuer.
func (r redacted) LogValue() slog.Value {
	if r == "" {
		return slog.StringValue("")
	}
	return slog.StringValue("[REDACTED]")
}

// String implements fmt.Stringer.
func (r redacted) String() string {
	return r.LogValue().String()
}

// GoString implements fmt.GoStringer for %#v.
func (r redacted) GoString() string {
	return `oauth.redacted("` + r.String() + `")`
}

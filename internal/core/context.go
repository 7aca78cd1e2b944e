package core

import "context"

// ctxKey is a context key type for verifier metadata propagation.
type ctxKey string

const verifierIPKey ctxKey = "verifier_ip"

// WithVerifierIP attaches the requesting client's IP to the context so the
// verification log can attribute attempts without changing service method
// signatures.
func WithVerifierIP(ctx context.Context, ip string) context.Context {
	if ip == "" {
		return ctx
	}
	return context.WithValue(ctx, verifierIPKey, ip)
}

// VerifierIPFromContext returns the attached verifier IP, or "".
func VerifierIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(verifierIPKey).(string); ok {
		return ip
	}
	return ""
}

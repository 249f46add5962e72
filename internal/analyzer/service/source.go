package service

import "context"

// Source describes where analyzed text came from. It travels on the context so
// sinks can file the result next to its origin.
type Source struct {
	URL   string
	Title string
}

type sourceKey struct{}

// WithSource returns a copy of ctx carrying src.
func WithSource(ctx context.Context, src Source) context.Context {
	return context.WithValue(ctx, sourceKey{}, src)
}

// SourceFromContext returns the Source stored in ctx, or the zero Source.
func SourceFromContext(ctx context.Context) Source {
	src, _ := ctx.Value(sourceKey{}).(Source)
	return src
}

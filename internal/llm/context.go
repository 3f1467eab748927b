package llm

import "context"

// Tags label a request in the event log and the debug log.
type Tags struct {
	// Purpose groups requests in `llm stats`, e.g. "sentence".
	Purpose string

	// Grade is the learner's grade level, if the request has one.
	Grade string

	// Target is the glossary word the request is built around, if any.
	Target string
}

type tagsKey struct{}

// WithTags attaches request tags to the context.
func WithTags(ctx context.Context, tags Tags) context.Context {
	return context.WithValue(ctx, tagsKey{}, tags)
}

// WithPurpose sets only the purpose tag, keeping any other tags.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	tags, _ := ctx.Value(tagsKey{}).(Tags)
	tags.Purpose = purpose
	return WithTags(ctx, tags)
}

// TagsFrom returns the tags on the context. Purpose is "unknown" when it
// was never set.
func TagsFrom(ctx context.Context) Tags {
	tags, _ := ctx.Value(tagsKey{}).(Tags)
	if tags.Purpose == "" {
		tags.Purpose = "unknown"
	}
	return tags
}

// PurposeFrom returns the purpose tag.
func PurposeFrom(ctx context.Context) string {
	return TagsFrom(ctx).Purpose
}

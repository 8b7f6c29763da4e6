// Package enhance defines the text enhancement step applied to a draft before
// voiceover generation. The shipped implementation is a stand-in; a real
// content-generation service can be dropped in behind the same interface.
package enhance

import "context"

type Enhancer interface {
	Enhance(ctx context.Context, text string) (string, error)
}

// Prefixer simulates enhancement by prefixing the draft.
type Prefixer struct {
	Prefix string
}

// Default matches the placeholder behavior of the original app.
func Default() Prefixer {
	return Prefixer{Prefix: "Enhanced: "}
}

func (p Prefixer) Enhance(_ context.Context, text string) (string, error) {
	return p.Prefix + text, nil
}

package richtext

import "sync"

// EmbedKind describes a custom embeddable node kind the editor supports
// beyond plain formatted text. The browser widget registers a matching blot;
// this registry is the server-side source of truth for what NormalizeHTML
// accepts and canonicalizes.
type EmbedKind struct {
	Name  string // registry name, e.g. "iframe"
	Tag   string // HTML tag emitted into the document
	Block bool   // block-level embed vs inline
}

var (
	embedMu    sync.Mutex
	embedKinds = make(map[string]EmbedKind)
)

// RegisterEmbed adds an embed kind to the registry. Registration is
// idempotent: re-registering an existing name is a no-op, so callers do not
// need a load-once guard of their own.
func RegisterEmbed(k EmbedKind) {
	embedMu.Lock()
	defer embedMu.Unlock()
	if _, exists := embedKinds[k.Name]; exists {
		return
	}
	embedKinds[k.Name] = k
}

// EmbedKinds returns a snapshot of all registered embed kinds.
func EmbedKinds() map[string]EmbedKind {
	embedMu.Lock()
	defer embedMu.Unlock()
	out := make(map[string]EmbedKind, len(embedKinds))
	for name, k := range embedKinds {
		out[name] = k
	}
	return out
}

func init() {
	// The built-in kinds mirror the editor widget's custom blots: inline
	// images sourced from data URLs, block iframes used for maps and
	// (aliased) videos, and a horizontal-rule divider.
	RegisterEmbed(EmbedKind{Name: "image", Tag: "img"})
	RegisterEmbed(EmbedKind{Name: "iframe", Tag: "iframe", Block: true})
	RegisterEmbed(EmbedKind{Name: "divider", Tag: "hr", Block: true})
}

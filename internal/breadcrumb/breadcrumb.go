package breadcrumb

import (
	"fmt"

	"golang.org/x/text/message"
)

// Key names a breadcrumb definition.
type Key string

// Link is one resolved breadcrumb entry.
type Link struct {
	// Key is the definition that produced the link.
	Key Key
	// Text is the unescaped display text.
	Text string
	// URL is the link destination.
	URL string
}

// Trail is an ordered list of links, root first and selected crumb last.
type Trail []Link

// Last returns the selected (leaf) link.
func (t Trail) Last() (Link, bool) {
	if len(t) == 0 {
		return Link{}, false
	}
	return t[len(t)-1], true
}

// Parent returns the link right before the leaf.
func (t Trail) Parent() (Link, bool) {
	if len(t) < 2 {
		return Link{}, false
	}
	return t[len(t)-2], true
}

// Keys lists the definition keys of the trail in order.
func (t Trail) Keys() []Key {
	keys := make([]Key, 0, len(t))
	for _, link := range t {
		keys = append(keys, link.Key)
	}
	return keys
}

// Localizer provides translated strings for breadcrumb rules.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}

package component

import (
	"strings"
	"unicode"

	"github.com/Iron-Ham/panelkit/internal/errors"
)

// Separator delimits namespace segments and route suffixes.
const Separator = "/"

// ValidateNamespace checks that ns is a non-empty, slash-delimited identifier
// with no empty segments and no whitespace.
func ValidateNamespace(ns string) error {
	if ns == "" {
		return errors.NewValidationError("namespace is empty").
			WithField("namespace").
			WithCause(errors.ErrInvalidNamespace)
	}
	for _, segment := range strings.Split(ns, Separator) {
		if segment == "" {
			return errors.NewValidationError("namespace has an empty segment").
				WithField("namespace").
				WithValue(ns).
				WithCause(errors.ErrInvalidNamespace)
		}
		if strings.IndexFunc(segment, unicode.IsSpace) >= 0 {
			return errors.NewValidationError("namespace segment contains whitespace").
				WithField("namespace").
				WithValue(ns).
				WithCause(errors.ErrInvalidNamespace)
		}
	}
	return nil
}

// RootContainer returns the first segment of a namespace or route, which
// identifies the top-level container that owns it.
func RootContainer(ns string) string {
	root, _, _ := strings.Cut(ns, Separator)
	return root
}

// JoinRoute appends a suffix to a namespace. An empty suffix yields the
// namespace itself.
func JoinRoute(ns, suffix string) string {
	if suffix == "" {
		return ns
	}
	return ns + Separator + suffix
}

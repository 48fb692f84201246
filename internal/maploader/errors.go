package maploader

import (
	"errors"

	"github.com/cory-johannsen/portalmap/internal/mapdoc"
)

// Every load failure wraps exactly one of these. Callers treat any of them as
// "cannot enter level" and report the error text.
var (
	// ErrDocument means the level file is missing, unreadable, or not well-formed.
	ErrDocument = mapdoc.ErrDocument
	// ErrMissingElement means a required element or attribute is absent:
	// <spawn>, <end>, <light> when lights are required, or a trigger type.
	ErrMissingElement = errors.New("missing required element")
	// ErrMalformedElement means an element lacks a required child or carries an
	// unparsable attribute.
	ErrMalformedElement = errors.New("malformed element")
	// ErrResource means a texture or mesh could not be resolved.
	ErrResource = errors.New("resource resolution failed")
)

// Package resource resolves asset identifiers from level documents into
// renderer-ready textures and meshes, and builds procedural box geometry.
package resource

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAbsent is returned when an absent Ref is resolved under AbsentError.
var ErrAbsent = errors.New("asset identifier absent")

// legacySentinel is the placeholder value older level files write for
// "no asset". It is read as absent.
const legacySentinel = "none"

// Ref names an asset relative to its asset directory. The zero Ref is absent.
type Ref struct {
	name string
}

// Named returns a Ref for name. An empty or sentinel name yields an absent Ref.
func Named(name string) Ref {
	name = strings.TrimSpace(name)
	if name == "" || name == legacySentinel {
		return Ref{}
	}
	return Ref{name: name}
}

// RefFromAttr converts an optional attribute lookup into a Ref.
func RefFromAttr(value string, ok bool) Ref {
	if !ok {
		return Ref{}
	}
	return Named(value)
}

// Name returns the identifier and whether it is present.
func (r Ref) Name() (string, bool) {
	return r.name, r.name != ""
}

// IsAbsent reports whether r names no asset.
func (r Ref) IsAbsent() bool {
	return r.name == ""
}

// String implements fmt.Stringer.
func (r Ref) String() string {
	if r.IsAbsent() {
		return "<absent>"
	}
	return r.name
}

// AbsentPolicy decides what resolving an absent Ref produces.
type AbsentPolicy string

const (
	// AbsentPlaceholder resolves absent refs to built-in placeholder assets.
	AbsentPlaceholder AbsentPolicy = "placeholder"
	// AbsentError fails resolution of absent refs with ErrAbsent.
	AbsentError AbsentPolicy = "error"
)

// ParseAbsentPolicy converts a configuration value into an AbsentPolicy.
func ParseAbsentPolicy(s string) (AbsentPolicy, error) {
	switch p := AbsentPolicy(s); p {
	case AbsentPlaceholder, AbsentError:
		return p, nil
	default:
		return "", fmt.Errorf("unknown absent-asset policy %q", s)
	}
}

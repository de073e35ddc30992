package gfx

import (
	"fmt"
	"strings"
)

// Kind tags a backend family. The set is closed.
type Kind uint8

const (
	KindHardware Kind = iota
	KindNative
	KindNull

	// kindUnset tags zero-value handles; it never matches a backend.
	kindUnset Kind = 0xFF
)

// Kinds lists every backend kind.
var Kinds = []Kind{KindHardware, KindNative, KindNull}

func (k Kind) String() string {
	switch k {
	case KindHardware:
		return "OpenGL"
	case KindNative:
		return "Direct3D"
	case KindNull:
		return "Null"
	default:
		return "unset"
	}
}

// ParseKind maps a backend selector string to a Kind.
func ParseKind(selector string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(selector)) {
	case "opengl", "gl", "hardware":
		return KindHardware, nil
	case "direct3d", "d3d", "native":
		return KindNative, nil
	case "null", "none", "":
		return KindNull, nil
	default:
		return kindUnset, &Error{
			Kind: ErrInvalidConfig,
			Op:   "parse_backend",
			Err:  fmt.Errorf("unknown backend selector %q", selector),
		}
	}
}

package gpt

import "github.com/Microsoft/go-winio/pkg/guid"

// guid.GUID already decodes the mixed-endian layout a GPT GUID uses on
// the medium (four little-endian fields followed by eight raw bytes) and its
// String() renders the canonical 8-4-4-4-12 form, so this file only
// names the two directions this package needs rather than reimplementing
// either.

// ParseGUID parses the canonical 8-4-4-4-12 string form of a GUID.
func ParseGUID(s string) (guid.GUID, error) {
	g, err := guid.FromString(s)
	if err != nil {
		return guid.GUID{}, annotatef(ErrBadArgument, "parse guid %q: %v", s, err)
	}
	return g, nil
}

package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixRect = "rect"
	PrefixPoly = "poly"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewRectID() string { return New(PrefixRect) }
func NewPolyID() string { return New(PrefixPoly) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}

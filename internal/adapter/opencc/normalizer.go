// Package opencc normalizes titles to simplified Chinese.
package opencc

import (
	"fmt"

	"github.com/longbridgeapp/opencc"
)

// DefaultConversion converts Traditional Chinese to Simplified Chinese.
const DefaultConversion = "t2s"

// Normalizer applies an OpenCC conversion. No Unicode normalization form is
// applied: CJK compatibility ideographs (U+F900..U+FAFF) stay outside the
// Han range the title filter accepts.
type Normalizer struct {
	cc *opencc.OpenCC
}

// NewNormalizer loads the OpenCC conversion (e.g. "t2s").
func NewNormalizer(conversion string) (*Normalizer, error) {
	if conversion == "" {
		conversion = DefaultConversion
	}
	cc, err := opencc.New(conversion)
	if err != nil {
		return nil, fmt.Errorf("opencc: load %s: %w", conversion, err)
	}
	return &Normalizer{cc: cc}, nil
}

// Normalize returns text converted to the target script.
func (n *Normalizer) Normalize(text string) (string, error) {
	out, err := n.cc.Convert(text)
	if err != nil {
		return "", fmt.Errorf("opencc: convert: %w", err)
	}
	return out, nil
}

// Package encoding converts text stored in legacy encodings to UTF-8
// before it is laid out.
package encoding

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var (
	ErrUnknownEncoding = errors.New("unknown encoding")
	ErrInvalidUTF8     = errors.New("input is not valid UTF-8")
)

// Decode converts data in the named encoding to UTF-8. Names are WHATWG
// labels such as "euc-kr", "shift_jis" or "windows-1252". An empty name
// means the data is already UTF-8 and is only validated.
func Decode(data []byte, name string) (string, error) {
	if name == "" {
		if !utf8.Valid(data) {
			return "", ErrInvalidUTF8
		}
		return string(data), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", name, err)
	}
	return string(out), nil
}

// Encode converts UTF-8 text to the named encoding. Runes the target
// cannot represent are an error.
func Encode(s, name string) ([]byte, error) {
	if name == "" {
		return []byte(s), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	return out, nil
}

// Name returns the canonical label for name, e.g. "euc-kr" for "korean".
func Name(name string) (string, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return htmlindex.Name(enc)
}

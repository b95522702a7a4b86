package encoding

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		enc  string
		data []byte
		want string
	}{
		{"utf-8 passthrough", "", []byte("héllo"), "héllo"},
		{"euc-kr", "euc-kr", []byte{0xC7, 0xD1, 0xB1, 0xDB}, "한글"},
		{"korean alias", "korean", []byte{0xC7, 0xD1}, "한"},
		{"shift_jis", "shift_jis", []byte{0x93, 0xFA, 0x96, 0x7B}, "日本"},
		{"windows-1252", "windows-1252", []byte{'c', 'a', 'f', 0xE9}, "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data, tt.enc)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode([]byte{0xff, 0xfe}, ""); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("invalid UTF-8 error = %v", err)
	}
	if _, err := Decode([]byte("x"), "klingon"); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("unknown encoding error = %v", err)
	}
}

func TestEncode(t *testing.T) {
	got, err := Encode("한글", "euc-kr")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if want := []byte{0xC7, 0xD1, 0xB1, 0xDB}; !bytes.Equal(got, want) {
		t.Errorf("Encode() = % X, want % X", got, want)
	}

	if _, err := Encode("日本", "windows-1252"); err == nil {
		t.Error("unrepresentable runes should fail")
	}
	if _, err := Encode("x", "klingon"); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("unknown encoding error = %v", err)
	}
}

func TestName(t *testing.T) {
	got, err := Name("korean")
	if err != nil {
		t.Fatalf("Name failed: %v", err)
	}
	if got != "euc-kr" {
		t.Errorf("Name(korean) = %q, want euc-kr", got)
	}
}

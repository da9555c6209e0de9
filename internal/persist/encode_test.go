package persist

import "testing"

func TestEncodeComponent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "unreserved passthrough", in: "AZaz09-_.!~*'()", want: "AZaz09-_.!~*'()"},
		{name: "space", in: "a b", want: "a%20b"},
		{name: "json punctuation", in: `[{"a":1}]`, want: "%5B%7B%22a%22%3A1%7D%5D"},
		{name: "cookie separators", in: "a;b,c=d", want: "a%3Bb%2Cc%3Dd"},
		{name: "multibyte", in: "é", want: "%C3%A9"},
		{name: "emoji", in: "💼", want: "%F0%9F%92%BC"},
		{name: "percent", in: "100%", want: "100%25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeComponent(tt.in)
			if got != tt.want {
				t.Errorf("EncodeComponent(%q) = %q, want %q", tt.in, got, tt.want)
			}

			back, err := DecodeComponent(got)
			if err != nil {
				t.Fatalf("DecodeComponent(%q): %v", got, err)
			}
			if back != tt.in {
				t.Errorf("round trip = %q, want %q", back, tt.in)
			}
		})
	}
}

func TestDecodeComponentMalformed(t *testing.T) {
	for _, in := range []string{"%", "%zz", "abc%2"} {
		if _, err := DecodeComponent(in); err == nil {
			t.Errorf("DecodeComponent(%q): expected error", in)
		}
	}
}

package currency

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		token    string
		wantCode string
		found    bool
	}{
		{"10u", "u", true},
		{"usd40", "usd", true},       // "usd" must win over "u"
		{"u$s40", "usd", true},       // symbol of the first entry
		{"US$40", "u", true},         // symbol of the short code
		{"40eur", "eur", true},
		{"€12,50", "eur", true},
		{"r40", "r", true},
		{"10", "", false},
		{"lunch", "", false},
		{"10U", "", false}, // matching is case-sensitive
	}

	for _, tc := range tests {
		got, found := Detect(tc.token)
		if found != tc.found {
			t.Errorf("Detect(%q) found = %v, want %v", tc.token, found, tc.found)
			continue
		}
		if found && got.Code != tc.wantCode {
			t.Errorf("Detect(%q) code = %q, want %q", tc.token, got.Code, tc.wantCode)
		}
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		token string
		code  string
		want  string
	}{
		{"10u", "u", "10"},
		{"usd40", "usd", "40"},
		{"u$s40", "usd", "40"},
		{"US$40", "u", "40"},
		{"40eur", "eur", "40"},
	}

	for _, tc := range tests {
		c, ok := ByCode(tc.code)
		if !ok {
			t.Fatalf("ByCode(%q) not found", tc.code)
		}
		if got := c.Strip(tc.token); got != tc.want {
			t.Errorf("Strip(%q) = %q, want %q", tc.token, got, tc.want)
		}
	}
}

func TestTableOrder(t *testing.T) {
	// "usd" has to precede "u": a prefix match on "usd40" must not pick
	// the shorter code first.
	var usdIdx, uIdx int
	for i, c := range Table {
		switch c.Code {
		case "usd":
			usdIdx = i
		case "u":
			uIdx = i
		}
	}
	if usdIdx > uIdx {
		t.Fatalf("table order broken: %q at %d after %q at %d", "usd", usdIdx, "u", uIdx)
	}
}

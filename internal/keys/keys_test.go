package keys

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain", "plain"},
		{"two words", "two_words"},
		{"v2! release", "v2_release"},
		{"a//b..c", "a_b_c"},
		{"already_joined", "already_joined"},
		{"trailing!", "trailing_"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDeriveDeterministic(t *testing.T) {
	a := Derive("city config", "pkg.proxy")
	b := Derive("city config", "pkg.proxy")
	if a != b {
		t.Fatalf("Derive not deterministic: %q vs %q", a, b)
	}
	if a != "city_config_pkg_proxy" {
		t.Fatalf("Derive = %q", a)
	}
}

// Token is unique per call; keys derived from it never match across runs.
func TestTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok := Token()
		if tok == "" || seen[tok] {
			t.Fatalf("Token collision or empty at iteration %d", i)
		}
		seen[tok] = true
	}
}

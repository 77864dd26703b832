package codec

import (
	"strings"
	"testing"
)

func TestLimitRejectsOversizedDecode(t *testing.T) {
	c := Limit{Inner: JSON{}, MaxDecode: 8}

	small, err := c.Encode("ok")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if v, err := c.Decode(small); err != nil || v != "ok" {
		t.Fatalf("Decode(small) = %v, %v", v, err)
	}

	big, err := c.Encode(strings.Repeat("x", 100))
	if err != nil {
		t.Fatalf("Encode big: %v", err)
	}
	if _, err := c.Decode(big); err == nil {
		t.Fatalf("Decode should reject payload over MaxDecode")
	}
}

func TestLimitDisabledWhenZero(t *testing.T) {
	c := Limit{Inner: JSON{}, MaxDecode: 0}
	b, _ := c.Encode(strings.Repeat("x", 100))
	if _, err := c.Decode(b); err != nil {
		t.Fatalf("MaxDecode=0 should disable the limit: %v", err)
	}
}

package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New()

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) = hit, want miss")
	}

	c.Set("k", "v1")
	if v, ok := c.Get("k"); !ok || v.(string) != "v1" {
		t.Errorf("Get(k) = %v, %v, want v1, true", v, ok)
	}

	// Overwrite replaces the previous entry.
	c.Set("k", "v2")
	if v, _ := c.Get("k"); v.(string) != "v2" {
		t.Errorf("Get(k) = %v, want v2", v)
	}
}

func TestExpiry(t *testing.T) {
	c := New()
	c.SetTTL("k", "v", 50*time.Millisecond)

	if v, ok := c.Get("k"); !ok || v.(string) != "v" {
		t.Fatalf("Get(k) = %v, %v, want v, true", v, ok)
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("Get(k) after expiry = hit, want miss")
	}
}

func TestKey_OrderIndependent(t *testing.T) {
	a := Key("imageinfo", "b", "a")
	b := Key("imageinfo", "a", "b")
	if a != b {
		t.Errorf("Key order-dependent: %q != %q", a, b)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		prefix string
		parts  []string
		want   string
	}{
		{"search", []string{"cats"}, "search:cats"},
		{"search", nil, "search:"},
		{"imageinfo", []string{"b", "a", "c"}, "imageinfo:a:b:c"},
	}
	for _, tt := range tests {
		if got := Key(tt.prefix, tt.parts...); got != tt.want {
			t.Errorf("Key(%q, %v) = %q, want %q", tt.prefix, tt.parts, got, tt.want)
		}
	}
}

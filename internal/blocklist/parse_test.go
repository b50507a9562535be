package blocklist

import "testing"

func TestParseDomains(t *testing.T) {
	text := `# comment
! adblock-style comment

bad.example
0.0.0.0 hosts.example
127.0.0.1	tab.example
MIXED.Case.Example
trailing.dot.example.
nodot
bad..example
.leading.example
`
	domains := ParseDomains(text)

	want := []string{
		"bad.example",
		"hosts.example",
		"tab.example",
		"mixed.case.example",
		"trailing.dot.example",
	}
	if len(domains) != len(want) {
		t.Errorf("got %d domains, want %d: %v", len(domains), len(want), domains)
	}
	for _, d := range want {
		if _, ok := domains[d]; !ok {
			t.Errorf("missing domain %q", d)
		}
	}
	for _, d := range []string{"nodot", "bad..example", ".leading.example", "comment"} {
		if _, ok := domains[d]; ok {
			t.Errorf("unexpected domain %q", d)
		}
	}
}

func TestParseDomains_Empty(t *testing.T) {
	if got := ParseDomains(""); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestDomainMatches(t *testing.T) {
	tests := []struct {
		blocked string
		target  string
		want    bool
	}{
		{"example.com", "example.com", true},
		{"example.com", "www.example.com", true},
		{"example.com", "a.b.example.com", true},
		{"example.com", "evilexample.com", false},
		{"example.com", "example.com.evil.net", false},
		{"example.com", "example.org", false},
		{"b.example.com", "example.com", false},
	}
	for _, tt := range tests {
		if got := domainMatches(tt.blocked, tt.target); got != tt.want {
			t.Errorf("domainMatches(%q, %q) = %v, want %v", tt.blocked, tt.target, got, tt.want)
		}
	}
}

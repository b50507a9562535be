package blocklist

import (
	"bufio"
	"strings"
)

// ParseDomains extracts normalized domains from a line-oriented blocklist.
// Blank lines and comment lines (prefixed '#' or '!') are skipped. Hosts-file
// style lines ("0.0.0.0 bad.example") keep only the last whitespace-separated
// token. Tokens are lowercased with trailing dots stripped; anything without
// a dot, or with an empty label, is discarded.
func ParseDomains(text string) map[string]struct{} {
	domains := make(map[string]struct{})

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		fields := strings.Fields(line)
		if d := normalizeDomain(fields[len(fields)-1]); d != "" {
			domains[d] = struct{}{}
		}
	}
	return domains
}

func normalizeDomain(token string) string {
	d := strings.ToLower(strings.TrimRight(token, "."))
	if !strings.Contains(d, ".") {
		return ""
	}
	for _, label := range strings.Split(d, ".") {
		if label == "" {
			return ""
		}
	}
	return d
}

// domainMatches reports whether target equals blocked or is a subdomain of
// it. The dot boundary matters: "evilexample.com" does not match a blocklist
// entry "example.com".
func domainMatches(blocked, target string) bool {
	return target == blocked || strings.HasSuffix(target, "."+blocked)
}

package analyzer

import (
	"net"
	"net/url"
	"regexp"
	"strings"

	"github.com/mikey/phishawk/internal/core"
)

var urlPattern = regexp.MustCompile(`(https?://[^\s<>"'()]+|www\.[^\s<>"'()]+)`)

// Heuristic trigger labels and the points each one adds
const (
	TriggerIPAddress      = "IP Address URL"
	TriggerInsecureHTTP   = "Insecure HTTP Link"
	TriggerPunycode       = "Punycode Domain"
	TriggerShortener      = "URL Shortener"
	TriggerAtSymbol       = "@ Symbol in URL"
	TriggerManySubdomains = "Excessive Subdomains"
	TriggerSuspiciousTLD  = "Suspicious TLD"
)

var triggerPoints = map[string]int{
	TriggerIPAddress:      30,
	TriggerInsecureHTTP:   10,
	TriggerPunycode:       25,
	TriggerShortener:      15,
	TriggerAtSymbol:       20,
	TriggerManySubdomains: 15,
	TriggerSuspiciousTLD:  20,
}

var shorteners = map[string]bool{
	"bit.ly":      true,
	"tinyurl.com": true,
	"goo.gl":      true,
	"t.co":        true,
	"ow.ly":       true,
	"is.gd":       true,
	"buff.ly":     true,
	"rebrand.ly":  true,
	"cutt.ly":     true,
	"shorturl.at": true,
}

var suspiciousTLDs = map[string]bool{
	"tk": true, "ml": true, "ga": true, "cf": true, "gq": true,
	"xyz": true, "top": true, "zip": true, "click": true, "work": true,
	"country": true, "loan": true,
}

// maxSubdomainLabels is the most labels a host may have before it counts as excessive
const maxSubdomainLabels = 4

// ExtractURLs finds links in free text. Links written without a scheme are
// treated as http.
func ExtractURLs(text string) []core.URLFinding {
	matches := urlPattern.FindAllString(text, -1)
	findings := make([]core.URLFinding, 0, len(matches))
	for _, raw := range matches {
		if !strings.HasPrefix(raw, "http") {
			raw = "http://" + raw
		}

		finding := core.URLFinding{FullURL: raw, Triggers: []string{}}
		if u, err := url.Parse(raw); err == nil {
			finding.Domain = u.Host
			finding.Path = u.Path
			finding.Scheme = u.Scheme
		}
		findings = append(findings, finding)
	}
	return findings
}

// CheckURL runs every URL heuristic against one finding and records the
// triggers it fires and the points they add
func CheckURL(f *core.URLFinding) {
	f.Triggers = []string{}
	f.Points = 0

	host := hostOf(f.Domain)

	if net.ParseIP(host) != nil {
		addTrigger(f, TriggerIPAddress, TriggerIPAddress)
	}
	if f.Scheme == "http" {
		addTrigger(f, TriggerInsecureHTTP, TriggerInsecureHTTP)
	}
	if strings.HasPrefix(host, "xn--") || strings.Contains(host, ".xn--") {
		addTrigger(f, TriggerPunycode, TriggerPunycode)
	}
	if shorteners[strings.TrimPrefix(host, "www.")] {
		addTrigger(f, TriggerShortener, TriggerShortener)
	}
	if strings.Contains(f.Domain, "@") || strings.Contains(strings.TrimPrefix(f.FullURL, f.Scheme+"://"), "@") {
		addTrigger(f, TriggerAtSymbol, TriggerAtSymbol)
	}
	if net.ParseIP(host) == nil && len(strings.Split(host, ".")) > maxSubdomainLabels {
		addTrigger(f, TriggerManySubdomains, TriggerManySubdomains)
	}
	if tld := tldOf(host); suspiciousTLDs[tld] {
		addTrigger(f, TriggerSuspiciousTLD, TriggerSuspiciousTLD+": ."+tld)
	}
}

func addTrigger(f *core.URLFinding, kind, label string) {
	f.Triggers = append(f.Triggers, label)
	f.Points += triggerPoints[kind]
}

func hostOf(domain string) string {
	if at := strings.LastIndex(domain, "@"); at >= 0 {
		domain = domain[at+1:]
	}
	if h, _, err := net.SplitHostPort(domain); err == nil {
		domain = h
	}
	return strings.ToLower(strings.Trim(domain, "[]"))
}

func tldOf(host string) string {
	if dot := strings.LastIndex(host, "."); dot >= 0 {
		return host[dot+1:]
	}
	return ""
}

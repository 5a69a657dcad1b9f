package whitelist

import (
	"net/mail"
	"strings"

	"go.uber.org/zap"
)

// Checker decides whether a sender belongs to a trusted domain
type Checker struct {
	domains []string
	logger  *zap.Logger
}

// NewChecker creates a new whitelist checker
func NewChecker(domains []string, logger *zap.Logger) *Checker {
	normalizedDomains := make([]string, 0, len(domains))
	for _, domain := range domains {
		domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "@")
		if domain != "" {
			normalizedDomains = append(normalizedDomains, domain)
		}
	}

	if len(normalizedDomains) > 0 && logger != nil {
		logger.Info("Initialized whitelist checker", zap.Strings("domains", normalizedDomains))
	}

	return &Checker{
		domains: normalizedDomains,
		logger:  logger,
	}
}

// IsWhitelisted checks if the sender's domain, or a parent of it, is whitelisted.
// sender may be a bare address or a display form such as "Name <user@host>".
func (c *Checker) IsWhitelisted(sender string) bool {
	if len(c.domains) == 0 {
		return false
	}

	domain := SenderDomain(sender)
	if domain == "" {
		return false
	}

	for _, whitelisted := range c.domains {
		if domain == whitelisted || strings.HasSuffix(domain, "."+whitelisted) {
			if c.logger != nil {
				c.logger.Debug("Domain is whitelisted",
					zap.String("domain", domain),
					zap.String("sender", sender))
			}
			return true
		}
	}

	return false
}

// SenderDomain returns the lowercased domain of a sender, or "" when it has none
func SenderDomain(sender string) string {
	address := strings.TrimSpace(sender)
	if parsed, err := mail.ParseAddress(address); err == nil {
		address = parsed.Address
	} else if start, end := strings.LastIndex(address, "<"), strings.LastIndex(address, ">"); start >= 0 && end > start {
		address = address[start+1 : end]
	}

	at := strings.LastIndex(address, "@")
	if at < 0 || at == len(address)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(address[at+1:]))
}

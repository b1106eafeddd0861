package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// ContentPolicy controls how conversation text appears in log lines.
type ContentPolicy string

const (
	// ContentRedacted replaces message text entirely.
	ContentRedacted ContentPolicy = "none"
	// ContentHashed keeps the text but replaces personal data with salted hashes.
	ContentHashed ContentPolicy = "hashed"
	// ContentFull logs message text unchanged.
	ContentFull ContentPolicy = "full"
)

const redacted = "[REDACTED]"

var (
	emailPattern      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	creditCardPattern = regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`)
	phonePattern      = regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	ipv4Pattern       = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
)

// Sanitizer prepares user and model text for logging.
type Sanitizer struct {
	policy ContentPolicy
	salt   string
}

// NewSanitizer parses policy, falling back to ContentRedacted for unknown values.
func NewSanitizer(policy string, salt string) *Sanitizer {
	p := ContentPolicy(strings.ToLower(strings.TrimSpace(policy)))
	switch p {
	case ContentRedacted, ContentHashed, ContentFull:
	default:
		p = ContentRedacted
	}
	return &Sanitizer{policy: p, salt: salt}
}

func (s *Sanitizer) Policy() ContentPolicy {
	return s.policy
}

// Content returns text safe to attach to a log line.
func (s *Sanitizer) Content(text string) string {
	if s == nil {
		return redacted
	}
	switch s.policy {
	case ContentFull:
		return text
	case ContentHashed:
		return s.hashPersonalData(text)
	default:
		return redacted
	}
}

func (s *Sanitizer) hashPersonalData(text string) string {
	// Cards before phones: a card number contains phone-shaped runs.
	text = creditCardPattern.ReplaceAllString(text, "[CC:REDACTED]")
	text = emailPattern.ReplaceAllStringFunc(text, func(m string) string {
		return "[EMAIL:" + s.hash(m) + "]"
	})
	text = phonePattern.ReplaceAllStringFunc(text, func(m string) string {
		return "[PHONE:" + s.hash(m) + "]"
	})
	text = ipv4Pattern.ReplaceAllStringFunc(text, func(m string) string {
		return "[IP:" + s.hash(m) + "]"
	})
	return text
}

func (s *Sanitizer) hash(value string) string {
	sum := sha256.Sum256([]byte(value + s.salt))
	return hex.EncodeToString(sum[:])[:8]
}

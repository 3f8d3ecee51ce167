package respond

import (
	"regexp"
)

var (
	// API key patterns.
	// Note: the Anthropic pattern must run first (more specific prefix).
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	// The OpenAI pattern must not match already-masked strings containing '*'.
	openaiKeyPattern = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// Credentials embedded in URLs (feed URLs can carry basic auth).
	urlCredentialPattern = regexp.MustCompile(`://([^:/]+):([^@/]+)@`)
)

// SanitizeError returns the error message with secrets masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// Apply API key masks in order, most specific pattern first.
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")

	msg = urlCredentialPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}

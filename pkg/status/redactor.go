// Package status prepares operational error messages for display. Messages coming
// from Kubernetes or the datastore can carry cluster internals and credentials;
// Redact strips them before they reach notifications.
package status

import "regexp"

// Redactor removes sensitive information from error messages
type Redactor struct {
	patterns []*sensitivePattern
}

type sensitivePattern struct {
	pattern     *regexp.Regexp
	replacement string
	description string
}

// NewRedactor creates a redactor with the default patterns
func NewRedactor() *Redactor {
	return &Redactor{patterns: buildDefaultPatterns()}
}

// Order matters: credential-bearing URLs go first so later patterns never split them.
func buildDefaultPatterns() []*sensitivePattern {
	return []*sensitivePattern{
		// Credentials
		{
			pattern:     regexp.MustCompile(`\b([a-z][a-z0-9+.-]*)://[^\s:/@]*:[^\s@]*@`),
			replacement: "${1}://[credentials]@",
			description: "URL user info",
		},
		{
			pattern:     regexp.MustCompile(`\b[^\s:@/()]+:[^\s@]*@tcp\(`),
			replacement: "[credentials]@tcp(",
			description: "MySQL DSN credentials",
		},
		{
			pattern:     regexp.MustCompile(`https?://[a-zA-Z0-9][-a-zA-Z0-9_.]*:\d+/api[/a-zA-Z0-9]*`),
			replacement: "[api-server]",
			description: "API server URL",
		},

		// Cluster topology
		{
			pattern:     regexp.MustCompile(`\bnode/[a-zA-Z0-9][-a-zA-Z0-9_.]*\b`),
			replacement: "node/[redacted]",
			description: "k8s node reference",
		},
		{
			pattern:     regexp.MustCompile(`\b(?:ip|gke|aks|eks)-[a-zA-Z0-9][-a-zA-Z0-9_.]*\b`),
			replacement: "[node]",
			description: "cloud node name",
		},
		{
			pattern:     regexp.MustCompile(`\b(namespaces?(?:/|:\s*"?|\s+"))[a-z0-9][-a-z0-9]*`),
			replacement: "${1}[redacted]",
			description: "namespace name",
		},
		{
			pattern:     regexp.MustCompile(`\b(serviceaccount[/:])[a-zA-Z0-9][-a-zA-Z0-9_.:]*`),
			replacement: "${1}[redacted]",
			description: "service account",
		},
		{
			pattern:     regexp.MustCompile(`\bsecrets?/[a-zA-Z0-9][-a-zA-Z0-9_.]*\b`),
			replacement: "secret/[redacted]",
			description: "secret reference",
		},

		// Private addresses
		{
			pattern:     regexp.MustCompile(`\b10\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`),
			replacement: "[internal-ip]",
			description: "10.x.x.x private IP",
		},
		{
			pattern:     regexp.MustCompile(`\b172\.(1[6-9]|2[0-9]|3[0-1])\.\d{1,3}\.\d{1,3}\b`),
			replacement: "[internal-ip]",
			description: "172.16-31.x.x private IP",
		},
		{
			pattern:     regexp.MustCompile(`\b192\.168\.\d{1,3}\.\d{1,3}\b`),
			replacement: "[internal-ip]",
			description: "192.168.x.x private IP",
		},
	}
}

// Redact removes sensitive information from message
func (r *Redactor) Redact(message string) string {
	if message == "" {
		return message
	}

	result := message
	for _, sp := range r.patterns {
		result = sp.pattern.ReplaceAllString(result, sp.replacement)
	}
	return result
}

// AddPattern adds a custom pattern applied after the defaults
func (r *Redactor) AddPattern(pattern *regexp.Regexp, replacement, description string) {
	r.patterns = append(r.patterns, &sensitivePattern{
		pattern:     pattern,
		replacement: replacement,
		description: description,
	})
}

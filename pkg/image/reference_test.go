package image

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportedVersion(t *testing.T) {
	tests := []struct {
		image    string
		expected string
	}{
		{"redis:7.2", "7.2"},
		{"redis", "0.0"},
		{"redis:6.2-alpine", "6.2-alpine"},
		{"bitnami/redis:7.0.15", "7.0.15"},
		{"redis:latest", "latest"},
		{"", "0.0"},
		{"redis:7.2@sha256:" + strings.Repeat("a", 64), "7.2"},
		{"redis@sha256:" + strings.Repeat("a", 64), "0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.image, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReportedVersion(tt.image))
		})
	}
}

func TestVersionAtLeast(t *testing.T) {
	tests := []struct {
		version  string
		minimum  string
		expected bool
	}{
		{"7.2", "6.0", true},
		{"6.0", "6.0", true},
		{"5.0", "6.0", false},
		{"0.0", "6.0", false},
		{"6.2-alpine", "6.0", true},
		{"7", "6.0", true},
		{"10.0", "6.0", true},
		{"latest", "6.0", false},
		{"alpine", "6.0", false},
		{"7.2", "not-a-version", false},
	}

	for _, tt := range tests {
		t.Run(tt.version+">="+tt.minimum, func(t *testing.T) {
			assert.Equal(t, tt.expected, VersionAtLeast(tt.version, tt.minimum))
		})
	}
}

func TestSupportsACLUsername(t *testing.T) {
	assert.True(t, SupportsACLUsername("redis:7.2"))
	assert.True(t, SupportsACLUsername("redis:6.0"))
	assert.False(t, SupportsACLUsername("redis:5.0"))
	assert.False(t, SupportsACLUsername("redis"))
	assert.True(t, SupportsACLUsername("redis:7.2@sha256:"+strings.Repeat("a", 64)))
	assert.False(t, SupportsACLUsername("redis:5.0@sha256:"+strings.Repeat("a", 64)))
}

func TestValidateFormat_Valid(t *testing.T) {
	valid := []string{
		"redis",
		"redis:7.2",
		"redis:7.2-alpine",
		"bitnami/redis:7",
		"ghcr.io/owner/redis:7.2",
		"localhost:5000/redis:7",
		"10.0.0.1:5000/cache/redis",
		"redis@sha256:" + strings.Repeat("a", 64),
	}
	for _, image := range valid {
		t.Run(image, func(t *testing.T) {
			assert.NoError(t, ValidateFormat(image))
		})
	}
}

func TestValidateFormat_Invalid(t *testing.T) {
	tests := []struct {
		image   string
		message string
	}{
		{"", "cannot be empty"},
		{" redis", "whitespace"},
		{"redis!", "invalid characters"},
		{"Redis:7", "repository path component"},
		{"redis:", "tag cannot be empty"},
		{"redis:.bad", "tag contains invalid characters"},
		{"team//redis", "empty path component"},
		{"redis@sha256:abc", "too short"},
		{"redis@" + strings.Repeat("a", 40), "algorithm:hex"},
		{"registry.example.com:port/redis", "invalid registry port"},
		{"-registry.io/redis", "invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.image, func(t *testing.T) {
			err := ValidateFormat(tt.image)
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

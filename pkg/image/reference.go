// Package image parses container image references of managed databases:
// format validation for the settings form and the engine version reported by the tag.
package image

import (
	"fmt"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"dbhost/pkg/constants"
)

var (
	simpleImageRegex   = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._/:@-]*$`)
	digestAlgRegex     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)
	digestHexRegex     = regexp.MustCompile(`^[a-fA-F0-9]+$`)
	tagRegex           = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9._-]*$`)
	portRegex          = regexp.MustCompile(`^\d+$`)
	ipv4Regex          = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)
	domainRegex        = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)*$`)
	repoComponentRegex = regexp.MustCompile(`^[a-z0-9]+(?:(?:[._]|__|[-]+)[a-z0-9]+)*$`)
)

// ValidateFormat validates the format of an image reference such as
// redis, redis:7.2-alpine, bitnami/redis:7, registry.example.com:5000/team/redis:7@sha256:...
func ValidateFormat(image string) error {
	if image == "" {
		return fmt.Errorf("image name cannot be empty")
	}
	if strings.TrimSpace(image) != image {
		return fmt.Errorf("image name cannot contain leading or trailing whitespace")
	}
	if !simpleImageRegex.MatchString(image) {
		return fmt.Errorf("image name contains invalid characters, only letters, numbers, dots (.), colons (:), slashes (/), underscores (_), hyphens (-) and @ are allowed")
	}

	mainPart := image
	if idx := strings.LastIndex(image, "@"); idx != -1 {
		mainPart = image[:idx]
		if err := validateDigest(image[idx+1:]); err != nil {
			return err
		}
	}

	namePart := mainPart
	if idx := strings.LastIndex(mainPart, ":"); idx != -1 {
		// A slash after the colon means the colon belongs to a registry port
		if afterColon := mainPart[idx+1:]; !strings.Contains(afterColon, "/") {
			namePart = mainPart[:idx]
			if err := validateTag(afterColon); err != nil {
				return err
			}
		}
	}

	return validateNamePart(namePart)
}

// ReportedVersion returns the engine version an image reports: everything after
// the first colon, or "0.0" when there is none. A pinned @digest is ignored.
func ReportedVersion(image string) string {
	if idx := strings.LastIndex(image, "@"); idx != -1 {
		image = image[:idx]
	}
	_, tag, found := strings.Cut(image, ":")
	if !found {
		return constants.DefaultReportedVersion
	}
	return tag
}

// VersionAtLeast compares two versions semantically. Tags that are not
// versions (latest, alpine) never satisfy the comparison.
func VersionAtLeast(version, minimum string) bool {
	v, err := goversion.NewVersion(version)
	if err != nil {
		return false
	}
	m, err := goversion.NewVersion(minimum)
	if err != nil {
		return false
	}
	return v.GreaterThanOrEqual(m)
}

// SupportsACLUsername reports whether the Redis image has named ACL users
func SupportsACLUsername(image string) bool {
	return VersionAtLeast(ReportedVersion(image), constants.RedisUsernameMinVersion)
}

func validateDigest(digest string) error {
	algorithm, hex, found := strings.Cut(digest, ":")
	if !found {
		return fmt.Errorf("invalid image digest format, should be algorithm:hex (e.g., sha256:abc123...)")
	}
	if !digestAlgRegex.MatchString(algorithm) {
		return fmt.Errorf("invalid image digest algorithm: %s", algorithm)
	}
	if len(hex) < 32 {
		return fmt.Errorf("image digest hash is too short, at least 32 characters required")
	}
	if !digestHexRegex.MatchString(hex) {
		return fmt.Errorf("image digest hash contains invalid characters, only hexadecimal characters allowed")
	}
	return nil
}

func validateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("image tag cannot be empty")
	}
	if len(tag) > 128 {
		return fmt.Errorf("image tag is too long, maximum length is 128 characters")
	}
	if !tagRegex.MatchString(tag) {
		return fmt.Errorf("image tag contains invalid characters, only letters, numbers, underscores (_), dots (.) and hyphens (-) are allowed")
	}
	return nil
}

func validateNamePart(name string) error {
	if name == "" {
		return fmt.Errorf("image repository name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("image name is too long, maximum length is 255 characters")
	}

	for i, part := range strings.Split(name, "/") {
		if part == "" {
			return fmt.Errorf("image name contains empty path component")
		}
		if i == 0 && (strings.Contains(part, ".") || strings.Contains(part, ":")) {
			if err := validateRegistry(part); err != nil {
				return err
			}
			continue
		}
		if !repoComponentRegex.MatchString(part) {
			return fmt.Errorf("invalid image repository path component: %s", part)
		}
	}
	return nil
}

func validateRegistry(registry string) error {
	host := registry
	if idx := strings.LastIndex(registry, ":"); idx != -1 {
		host = registry[:idx]
		if port := registry[idx+1:]; !portRegex.MatchString(port) {
			return fmt.Errorf("invalid registry port: %s", port)
		}
	}

	if host == "localhost" || ipv4Regex.MatchString(host) {
		return nil
	}
	if !domainRegex.MatchString(host) {
		return fmt.Errorf("invalid registry address format: %s", host)
	}
	return nil
}

// Package validation checks settings form values against a static rule table.
package validation

import (
	"fmt"
	"strings"
)

// Kind is the value type a field accepts
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
)

// Rule constrains one form field
type Rule struct {
	Field    string
	Label    string // empty means the humanized field name
	Required bool
	Kind     Kind
}

// DatabaseRules is the rule table of the Redis settings form, in display order
var DatabaseRules = []Rule{
	{Field: "name", Label: "Name", Required: true},
	{Field: "description", Label: "Description"},
	{Field: "redis_conf", Label: "Redis Configuration"},
	{Field: "redis_username", Label: "Redis Username", Required: true},
	{Field: "redis_password", Label: "Redis Password", Required: true},
	{Field: "image", Label: "Image", Required: true},
	{Field: "ports_mappings", Label: "Port Mapping"},
	{Field: "is_public", Label: "Is Public", Kind: KindBool},
	{Field: "public_port", Label: "Public Port", Kind: KindInt},
	{Field: "is_log_drain_enabled", Kind: KindBool},
	{Field: "custom_docker_run_options", Label: "Custom Docker Options"},
}

// FieldError is a failed rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects every failed rule of one validation pass
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, " ")
}

// DisplayLabel returns the label shown in messages for the rule's field
func (r Rule) DisplayLabel() string {
	if r.Label != "" {
		return r.Label
	}
	return strings.ReplaceAll(r.Field, "_", " ")
}

// Validate checks values against rules in table order.
// A nil value or empty string is absent; absent fields only fail when required.
func Validate(rules []Rule, values map[string]any) error {
	var errs Errors
	for _, rule := range rules {
		value, present := values[rule.Field]
		if !present || isEmpty(value) {
			if rule.Required {
				errs = append(errs, FieldError{
					Field:   rule.Field,
					Message: fmt.Sprintf("The %s field is required.", rule.DisplayLabel()),
				})
			}
			continue
		}
		if !matchesKind(rule.Kind, value) {
			errs = append(errs, FieldError{
				Field:   rule.Field,
				Message: fmt.Sprintf("The %s field must be %s.", rule.DisplayLabel(), kindNoun(rule.Kind)),
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}

func matchesKind(kind Kind, value any) bool {
	switch kind {
	case KindBool:
		_, ok := value.(bool)
		return ok
	case KindInt:
		switch value.(type) {
		case int, int32, int64:
			return true
		}
		return false
	default:
		_, ok := value.(string)
		return ok
	}
}

func kindNoun(kind Kind) string {
	switch kind {
	case KindBool:
		return "true or false"
	case KindInt:
		return "an integer"
	default:
		return "a string"
	}
}

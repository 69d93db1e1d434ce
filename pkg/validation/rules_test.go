package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() map[string]any {
	return map[string]any{
		"name":                      "cache",
		"description":               "",
		"redis_conf":                "",
		"redis_username":            "default",
		"redis_password":            "secret",
		"image":                     "redis:7.2",
		"ports_mappings":            "",
		"is_public":                 false,
		"public_port":               nil,
		"is_log_drain_enabled":      false,
		"custom_docker_run_options": "",
	}
}

func TestValidate_ValidForm(t *testing.T) {
	assert.NoError(t, Validate(DatabaseRules, validForm()))
}

func TestValidate_RequiredFields(t *testing.T) {
	form := validForm()
	form["name"] = "   "
	delete(form, "redis_password")

	err := Validate(DatabaseRules, form)
	require.Error(t, err)

	var errs Errors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 2)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "The Name field is required.", errs[0].Message)
	assert.Equal(t, "redis_password", errs[1].Field)
	assert.Equal(t, "The Redis Password field is required.", errs[1].Message)
	assert.Equal(t, "The Name field is required. The Redis Password field is required.", err.Error())
}

func TestValidate_Types(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   any
		message string
	}{
		{"public port string", "public_port", "6379", "The Public Port field must be an integer."},
		{"public port float", "public_port", 6379.5, "The Public Port field must be an integer."},
		{"is public string", "is_public", "yes", "The Is Public field must be true or false."},
		{"unlabeled field", "is_log_drain_enabled", 1, "The is log drain enabled field must be true or false."},
		{"name not string", "name", 42, "The Name field must be a string."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form[tt.field] = tt.value

			err := Validate(DatabaseRules, form)
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestValidate_NullableAcceptsValues(t *testing.T) {
	form := validForm()
	form["public_port"] = 16379
	form["is_public"] = true
	form["description"] = "primary cache"
	assert.NoError(t, Validate(DatabaseRules, form))
}

func TestDatabaseRules_CoverFormFields(t *testing.T) {
	seen := map[string]bool{}
	for _, rule := range DatabaseRules {
		assert.False(t, seen[rule.Field], "duplicate rule for %s", rule.Field)
		seen[rule.Field] = true
	}
	for field := range validForm() {
		assert.True(t, seen[field], "missing rule for %s", field)
	}
}

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// Validate checks that c can drive an authorization code flow.
// Secrets are never echoed back in the returned errors.
func (c Config) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.ClientID) == "" {
		errs.Add("clientId", "is required (set SPOTLOGIN_CLIENT_ID)")
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		errs.Add("clientSecret", "is required (set SPOTLOGIN_CLIENT_SECRET)")
	}

	validateAbsoluteURL(&errs, "redirectUri", c.RedirectURI)
	validateAbsoluteURL(&errs, "provider.authUrl", c.Provider.AuthURL)
	validateAbsoluteURL(&errs, "provider.tokenUrl", c.Provider.TokenURL)
	validateAbsoluteURL(&errs, "provider.apiUrl", c.Provider.APIURL)

	if len(c.Scopes) == 0 {
		errs.Add("scopes", "at least one scope is required")
	}
	for _, scope := range c.Scopes {
		if strings.TrimSpace(scope) == "" {
			errs.Add("scopes", "scopes must not be empty strings")
			break
		}
	}

	if c.CallbackTimeout < 0 {
		errs.Add("callbackTimeout", "must not be negative", c.CallbackTimeout)
	}
	if c.DefaultCallbackPort < 0 || c.DefaultCallbackPort > 65535 {
		errs.Add("defaultCallbackPort", "must be between 0 and 65535", c.DefaultCallbackPort)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateAbsoluteURL(errs *ValidationErrors, field, value string) {
	if value == "" {
		errs.Add(field, "is required")
		return
	}
	u, err := url.Parse(value)
	if err != nil {
		errs.Add(field, fmt.Sprintf("is not a valid URL: %v", err), value)
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		errs.Add(field, "must be an absolute http or https URL", value)
		return
	}
	if u.Host == "" {
		errs.Add(field, "must include a host", value)
	}
}

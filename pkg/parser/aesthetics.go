package parser

import (
	"regexp"
	"strconv"
	"strings"

	"molgen/pkg/colour"
)

const (
	attrColour = "colour"
	attrRadius = "radius"
	attrAlpha  = "alpha"
)

var (
	// aesPattern accepts aes(...) holding only letters, digits, whitespace and ,=#.
	aesPattern = regexp.MustCompile(`^aes\([a-zA-Z0-9\s,=#.]*\)$`)

	// decimalPattern accepts unsigned decimals such as 10 or 0.5
	decimalPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

// aestheticsBody validates the outer aes(...) syntax and returns its contents
func aestheticsBody(arg string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(arg))
	if !aesPattern.MatchString(normalized) {
		return "", &Error{Kind: AestheticSyntaxError, Value: arg}
	}
	return normalized[len("aes(") : len(normalized)-1], nil
}

// forEachAttribute walks the key=value pairs of an aesthetics body in order,
// rejecting keys outside allowed and keys seen before. Each accepted pair is
// handed to apply before the next one is examined.
func forEachAttribute(body string, allowed []string, apply func(key, value string) error) error {
	seen := make(map[string]bool, len(allowed))
	for _, component := range strings.Split(body, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(component), "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if !found || !contains(allowed, key) {
			return &Error{Kind: UnknownAttributeError, Field: key, Allowed: allowed}
		}
		if seen[key] {
			return &Error{Kind: DuplicateAttributeError, Field: key}
		}
		seen[key] = true

		if err := apply(key, value); err != nil {
			return err
		}
	}
	return nil
}

// parseColourAttribute resolves a colour override
func parseColourAttribute(value string) (string, error) {
	hex, err := colour.Resolve(value)
	if err != nil {
		return "", &Error{Kind: InvalidColourError, Field: attrColour, Value: value}
	}
	return hex, nil
}

// parseDecimalAttribute parses radius or alpha, which must be unsigned decimals
func parseDecimalAttribute(key, value string) (float64, error) {
	if !decimalPattern.MatchString(value) {
		return 0, &Error{Kind: NumericFormatError, Field: key, Value: value}
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &Error{Kind: NumericFormatError, Field: key, Value: value}
	}
	return f, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

package ui

import (
	"strings"
)

// SuccessMessage creates a success message with a checkmark icon
func SuccessMessage(message string, details ...string) string {
	var parts []string
	parts = append(parts, Green(IconCheckmark), Green(message))

	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}

	return strings.Join(parts, " ")
}

// ErrorMessage formats an error message in red
func ErrorMessage(message string) string {
	return Red(IconCross + " " + message)
}

// WarningMessage formats a warning message in yellow
func WarningMessage(message string) string {
	return Yellow(IconWarning + " " + message)
}

// InfoMessage formats an info message in blue
func InfoMessage(message string) string {
	return Blue(message)
}

// TypeLabel colors an object type name so the four kinds are easy to tell apart.
func TypeLabel(objectType string) string {
	switch objectType {
	case "blob":
		return Green(objectType)
	case "tree":
		return Cyan(objectType)
	case "commit":
		return Yellow(objectType)
	case "tag":
		return Magenta(objectType)
	default:
		return Gray(objectType)
	}
}

// Package llmclient defines the shared contract for hosted language-model
// clients and provides the Poe-backed implementation.
package llmclient

import "fmt"

// CredentialError is a fatal construction-time error: the provider credential
// is missing from the process environment. It is never surfaced through
// SampleText; it propagates to whoever constructs the client.
type CredentialError struct {
	// Var is the environment variable that must be set.
	Var string

	// Hint tells the operator what value the variable expects.
	Hint string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("the %s environment variable is not set. %s", e.Var, e.Hint)
}

// IsCredentialError checks if an error is a CredentialError.
func IsCredentialError(err error) bool {
	_, ok := err.(*CredentialError)
	return ok
}

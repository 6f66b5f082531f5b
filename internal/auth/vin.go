// Package auth implements the one-time identity gate that controls whether
// the node is allowed to publish telemetry.
package auth

// Authenticator compares a presented VIN against the expected one.
// Comparison is exact, case-sensitive string equality; a VIN is treated as a
// shared-secret-like identity, not parsed for structure.
type Authenticator struct {
	expected string
}

func New(expectedVIN string) *Authenticator {
	return &Authenticator{expected: expectedVIN}
}

// Authenticate reports whether the presented VIN matches the expected one.
func (a *Authenticator) Authenticate(presented string) bool {
	return presented != "" && presented == a.expected
}

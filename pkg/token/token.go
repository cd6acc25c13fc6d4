// Package token provides bearer-token sources for the fetch client.
package token

// Provider is a generic interface for a service that provides the
// auth token for the client to use.
type Provider interface {

	// Token retrieves the current token - this may return a fixed or
	// cached value, or it may go and do some work to acquire the
	// latest valid token.
	Token() string
}

// Package ark implements the Provider interface for Volcengine Ark. It owns
// one shared HTTP client and both wire protocols, and picks the protocol
// for each call from the configured model table.
package ark

// Package security holds the TLS settings a bound client uses to reach an
// https base URI.
package security

// Package version reports the restbind build version and derives the
// User-Agent bound clients send.
package version

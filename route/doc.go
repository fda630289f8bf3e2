// Package route compiles a method's path template and query parameters into
// a Plan that assembles the request target for each call.
//
// Templates use "{name}" placeholders only. A template with no placeholders
// and a method with no query parameters compile to a static plan whose
// target is the literal path; everything else is assembled per call from
// precomputed fragments.
package route

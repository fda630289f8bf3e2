// Package descriptor normalizes method declarations into immutable method
// descriptors.
//
// A Declaration is the resolved description of one REST client method:
// its verb, path template, role-tagged parameters, body publisher and
// declared return shape. Extract validates it, classifies every parameter
// into a Sort, assigns roles and slots, and derives the ReturnShape. The
// resulting *Method is what the route, publisher and executor packages
// compile from; nothing downstream looks at reflect types again.
package descriptor

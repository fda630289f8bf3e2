// Package publisher provides the body-publisher protocol: named strategies
// that turn a method's Body parameters into a request payload.
//
// A strategy is a Factory registered under an id. At bind time the factory
// receives the method, its Body parameters and a logger, and returns a
// Publisher closure that runs on every call. Three strategies are built in:
//
//	no-body      empty payload
//	url-encoded  "&name=value" pairs, application/x-www-form-urlencoded
//	multipart    one form-data part per parameter, multipart/form-data
//
// Custom strategies are added with Registry.Register:
//
//	reg := publisher.NewRegistry()
//	_ = reg.Register("json", func(c publisher.Context) (publisher.Publisher, error) {
//	    ...
//	})
package publisher

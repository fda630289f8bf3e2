// Package binder compiles a set of method declarations into a REST client.
//
// Compile extracts and compiles every declaration exactly once. The first
// failure aborts the whole set and no Binder is returned. A Binder can then
// be bound to any number of base URIs; each Client owns one transport
// client, created on the first call that needs it.
//
//	b, err := binder.Compile(decls, binder.WithConfig(cfg))
//	client, err := b.Bind("https://api.example.com/v1")
//	name, err := client.Call(ctx, "getName", "42")
//
// Open does the same from a loaded Config, also wiring logging and
// telemetry.
package binder

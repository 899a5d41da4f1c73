// Package routing implements the route table at the heart of the engine.
//
// A Table collects route declarations (method set, path pattern, handler
// binding) from direct registration, prefix groups, and controllers. On
// Publish the table compiles every pattern twice:
//
//  1. Forward: all entries are handed to the Dispatcher, a thin adapter
//     around gorilla/mux, which answers a single question per request:
//     Match(method, path) -> Outcome.
//
//  2. Reverse: every pattern is parsed into a PathExpression (canonical
//     {name} tokens, static prefix, ordered parameter names) and inserted
//     into a PathIndex keyed by static prefix. Each bucket is sorted by
//     descending parameter count, so reverse lookup always tries the most
//     specific template first.
//
// The table is write-only before Publish and read-only after it, which is
// why no locking exists here: concurrent requests only ever read.
package routing

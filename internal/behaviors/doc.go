// Package behaviors implements the theme's document transforms. Each
// behavior is independent, idempotent and a no-op on documents without
// its markup; they are applied through the engine host in registration
// order.
package behaviors

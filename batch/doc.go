// Package batch builds and collapses independent pyramids in parallel.
//
// Pyramids are immutable once built, so a batch only shares its inputs and
// options between goroutines. Concurrency is bounded with an errgroup.
package batch

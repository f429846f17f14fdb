// Package diag defines the diagnostic model shared by detection and
// planning.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for every refusal or
//     warning a planning run produces, without coupling producers to
//     storage or formatting.
//   - Keep the run alive: plan-time findings are reported, never thrown.
//     A finding withholds a trait family or a whole type's plan; it does
//     not abort the run, and callers decide whether warnings fail their
//     build.
//
// # Data model
//
// Diagnostic is the central record: severity, a stable machine-readable
// code (see codes.go), a human message, an optional remedy, and a
// type/member reference pointing at the shape that triggered it.
//
// Producers emit through a Reporter; BagReporter aggregates into a Bag,
// which supports sorting, deduplication and merging for stable output.
//
// Contract violations by the shape provider (impossible classifications,
// foreign IDs) are NOT diagnostics: they panic as unreachable states in
// package shape.
package diag

// Package structcmp implements structural equality, hashing and ordering over
// container shapes: sequences, sets, maps, groupings, optionals, memory slices
// and opaque values.
//
// # Purpose
//
//   - Give synthesized trait implementations a single, shared meaning of
//     "structurally equal" and "structurally ordered", so that generated code
//     for unrelated types agrees on container semantics.
//   - Stay usable as a standalone library: every family function is pure,
//     total, and callable outside any code-generation context.
//
// # Semantics
//
// The rules, in the precedence generated code applies them (first match wins):
//
//  1. Declared custom equality — a type implementing Equaler is deferred to
//     entirely (see EqualAny).
//  2. Memory slices — elementwise content comparison; nil is distinct from
//     empty (EqualMem, HashMem).
//  3. Maps — equal iff same key set with per-key equal values, order never
//     matters; hashes fold per-entry hashes commutatively (EqualMap, HashMap).
//  4. Groupings — maps from key to many values; per-key comparison is either
//     positional or multiset, fixed once per grouping shape (EqualGrouping).
//  5. Sequences — same length, pairwise equal in order; hashes fold element
//     hashes in order (EqualSeq, HashSeq).
//  6. Sets — two-way containment. Both directions use each side's own
//     membership policy, so two sets with different policies may be judged
//     equal when both containment passes succeed. That relaxation is
//     deliberate and must not be tightened (EqualSet, HashSet).
//  7. Optionals — absent equals absent, absent never equals present, two
//     present values recurse; absent hashes to AbsentHash (EqualOption).
//  8. Opaque fallback — the value's own equality, with explicit nil handling
//     (EqualAny, HashAny). No shape is ever "unsupported".
//
// For every container family, absent (nil) and present-but-empty are NOT
// equal. Collapsing absent into empty is a convention owned by single-value
// wrapper types, never by containers.
//
// String comparison throughout is governed by a CaseMode; one mode must drive
// equality, hashing and ordering together for any given type.
package structcmp

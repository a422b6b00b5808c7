package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent read-side computations. Using a centralized singleflight.Group
// ensures that only one computation runs for a given key while other
// callers wait for the result.

import "golang.org/x/sync/singleflight"

// LegalOptionsGroup deduplicates legal-option enumeration requests keyed by
// session UUID and state version (e.g. "abc123:7"). Enumeration is pure for
// a given state, so concurrent pollers share one computation.
var LegalOptionsGroup singleflight.Group

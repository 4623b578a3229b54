// Package grouping merges tables extracted from many pages into one table per
// distinct header.
//
// Tables are keyed by a [Signature] computed from their normalized header
// row. The first table with a given signature starts a group; later tables
// with the same signature are aligned to the group's columns and their rows
// appended:
//
//	engine := grouping.New(grouping.WithLogger(logger))
//	for _, raw := range tables {
//	    if skip := engine.Add(raw); skip != nil {
//	        // table was not usable
//	    }
//	}
//	result := engine.Result()
//	combined := result.Combined("Combined_Table")
//
// [Engine.Add] skips tables with fewer than two rows, a missing header, or a
// header whose cells are all empty. Skips are logged and returned, never
// treated as errors.
//
// [Engine.Result] sanitizes every group (see frame.Sanitize) and returns the
// groups in the order their signatures were first seen. An Engine is not
// safe for concurrent use.
package grouping

// Package seed imports the initial team list from a JSON document.
//
// The document is an array of objects with the string fields teamName,
// qualifyingZone and imageName and the numeric field wins. It can be read from a
// local file or from an object in the configured storage bucket.
//
// # Trigger
//
// The import only runs when the record store is empty; otherwise it is skipped
// and reported as already seeded. Concurrent triggers share a single import.
//
// # Malformed Entries
//
// By default malformed entries are skipped, logged with their index and reason,
// and reported in the Result while valid entries are imported. In strict mode a
// single malformed entry fails the whole import before anything is written, which
// makes startup fail.
//
// # Partial Failure
//
// Entries are inserted one by one as a single batch with one trailing store
// notification. If an insert fails partway the entries inserted before it remain;
// there is no rollback across the batch.
package seed

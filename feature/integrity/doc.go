// Package integrity provides health checks for the teamboard deployment.
//
// # Checks Provided
//
//   - Schema: the teams table has every column the record store reads and writes.
//   - Seed: the configured seed document is readable and parses under the configured policy.
//   - View: the live view matches a fresh evaluation of the store, row by row.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/seed : Runs the seed check.
//   - GET /integrity/view : Runs the view check.
package integrity

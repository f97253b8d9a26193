// Package teams exposes the live team view over HTTP.
//
// The Service reads from a liveview.Controller and writes through the record
// store; the controller picks writes up through its store subscription, so a
// write returns after the view already reflects it.
//
// # Routes
//
//	GET  /teams/sections                     section labels and row counts
//	GET  /teams/sections/:section/rows/:row  record at a position
//	GET  /teams/snapshot                     current snapshot (ids and versions)
//	GET  /teams/operations                   recent reconcile batches
//	POST /teams                              add a team
//	POST /teams/:id/wins                     increment wins
package teams

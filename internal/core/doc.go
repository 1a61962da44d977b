// Package core holds the county contact domain: the contact model, the
// canonical region list, the CSV interchange codec, the Store and the Service
// that ties them together. It has no HTTP knowledge and is shared by the API
// server and the command-line tool.
//
// # Store
//
// A [Store] is loaded once from a [DocumentStore] and kept in memory as the
// authoritative copy. Every mutation rewrites the whole document before it is
// considered successful:
//
//	store, err := core.OpenStore(ctx, storage.NewFile("data/contacts.json"))
//	svc := core.NewService(store, regions, core.Options{})
//
// [Store.Put] deletes a key when given an empty contact. [Store.Merge], used by
// imports, stores empty contacts as-is and never deletes.
//
// # CSV
//
// [EncodeCSV] writes the header county,name,phone,email and one row per stored
// county in ascending key order. [DecodeCSV] returns accepted and skipped row
// counts plus the updates to merge; a blank county skips the row and a later
// row for the same county wins.
//
// # Errors
//
// Failures are classified with [Error] kinds (MalformedInput, UnknownKey,
// StorageUnavailable, InvalidContact) and compared with errors.Is against the
// package sentinels. [MapError] turns any error into a coded [UserMessage].
package core

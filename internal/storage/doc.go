// Package storage implements core.DocumentStore backends.
//
// Each backend holds the whole contact map as a single document: a JSON file,
// one row in PostgreSQL, or one DynamoDB item. Load creates an empty document
// when none exists and Save overwrites the document wholesale.
package storage

// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain repositories and read from the database
// directly with raw SQL, returning flat response structs shaped for the
// transport layer. Access checks still run through the policy engine.
package queries

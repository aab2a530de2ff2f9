// Package order provides domain entities and business logic for order management
// in the delivery platform. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root holding identity, courier binding, address and rating
//   - Status: A state machine enforcing the IN_PROGRESS -> FINISHED transition
//   - Item: An immutable order line snapshotted from the user's bucket at checkout
//
// Key business rules:
//   - An order is created already bound to a courier and in progress
//   - Status moves forward only; a finished order can never be reopened
//   - A rating is attached at most once, with values between 1 and 5
//   - Orders are never deleted
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order

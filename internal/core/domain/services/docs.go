// Package services provides domain services that implement business rules
// spanning multiple aggregates in the order platform.
//
// The package includes:
//   - PolicyEngine: pure role-based capability checks gating every operation
//   - RatingAggregator: the weighted reputation score for couriers
//
// Domain services here are deterministic and perform no I/O; all data they
// need is passed in by the application layer.
package services

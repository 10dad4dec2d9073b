// Package order provides domain entities and business logic for the dropship
// order lifecycle. It implements the Order aggregate root and the Status
// state machine that governs it.
//
// The package includes:
//   - Order: The aggregate root carrying commercial terms, integration references and lifecycle state
//   - Status: A state machine with an explicit transition table for the order lifecycle
//   - IllegalTransitionError / StaleStateError: the two guard errors of the lifecycle
//
// Key business rules:
//   - Orders follow PENDING → SUPPLIER_ORDERING → ORDERED_SUPPLIER → BUYER_INFO_SET
//     → FORWARDER_SENDING → SENT_TO_FORWARDER → DONE
//   - Any non-terminal order may be routed to MANUAL_REVIEW; pipeline orders
//     may be routed to RETRYING on transient failures
//   - The supplier order id and forwarder job id are recorded exactly when the
//     corresponding external call succeeds, never speculatively
//   - DONE and FAILED are terminal; later corrections are audit-only
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order

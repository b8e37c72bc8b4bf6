// Package order provides domain entities and business logic for garment-order
// management. It implements the Order aggregate root with lifecycle management,
// department claims, payment tracking, SLA evaluation, and per-role action maps.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine routing orders through the department pipeline
//   - Claims: The four-slot department claim registry gating status transitions
//   - SLACalculator: Per-department deadline derivation and urgency banding
//   - ActionMap: The per-role capability flags derived for an order's state
//
// Key business rules:
//   - Status moves only along edges of the transition rule table; Completed and
//     Cancelled are terminal
//   - Department transitions require the acting user to hold that department's
//     claim slot; Admin and SuperAdmin bypass claim gates
//   - A failed QC verdict loops the order back into production or design and
//     increments the rework counter
//   - Shipping is blocked while a balance is outstanding, unless the order is
//     cash-on-delivery
//   - Payment state and balance due are always derived from the money columns,
//     never stored
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order

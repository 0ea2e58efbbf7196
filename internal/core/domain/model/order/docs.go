// Package order contains the order aggregate: the authoritative lifecycle
// state machine, line items with price snapshots, and the exact-integer
// financial breakdown. Orders are created by the order validator service in
// Pending status and mutated only through guarded transition methods.
package order

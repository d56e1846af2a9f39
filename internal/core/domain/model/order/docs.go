// Package order contains the Order aggregate: line items with price snapshots,
// the recomputed pricing block, the delivery address, the courier assignment,
// cash-on-delivery collection data and the status state machine with its
// append-only history.
//
// The aggregate is the single writer of status and statusHistory. Every
// accepted transition appends exactly one history entry, so the last history
// entry always matches the current status. Persistence conditions its writes
// on the version read before the transition; a lost race surfaces as
// errs.ErrConflict, never as a silent overwrite.
package order

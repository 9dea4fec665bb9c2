// Package order contains the TrackOrder aggregate: the record of a single
// commissioned track and the state machine that governs its life from deposit
// checkout to confirmed delivery.
//
// The lifecycle is:
//
//	pending_demo_submission ──> awaiting_customer_approval ──> awaiting_final_payment
//	        ^                            │                            │
//	        └────── revision ────────────┘                            v
//	                                              awaiting_final_delivery ──> completed
//
// Two payment gates sit on the graph: a demo can only be submitted once the
// 30% deposit has cleared, and final files can only be delivered once the 70%
// balance has cleared. Every transition is guarded by the acting user's
// identity: producers submit work, customers approve it. Guard violations are
// reported as ErrNotAuthorized or ErrInvalidState and never mutate the
// aggregate.
package order

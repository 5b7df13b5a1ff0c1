// Package plan turns a flat list of systems into a sequence of parallel
// stages that respects every system's declared borrows: two
// systems land in the same stage only if neither's writes collide with
// the other's reads or writes, so everything inside a stage can run
// concurrently while stages themselves run in order.
//
// Build uses a greedy earliest-fit placement: each system, in input
// order, joins the first existing stage it is compatible with, or opens
// a new one. This does not produce the fewest possible stages in every
// case, but it is deterministic and takes a single pass over the systems
// (each checked against the stages opened so far), which is the same
// tradeoff the scheduler it was ported from makes.
package plan

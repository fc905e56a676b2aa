// Package match provides the core matching engine for projmatch.
//
// # Reading Guide
//
// Start with these three files to understand the matching kernel:
//   - entity.go: Applicant and Project records and the proposal history
//   - store.go: the Entity Store and bulk loading from record files
//   - engine.go: the proposal/eviction loop and its termination guards
//
// # Architecture
//
// The match package owns the assignment relation; supporting code lives in
// sub-packages:
//   - match/input/: line-oriented record parsing (no dependency on match/)
//   - match/report/: final applicant-by-project matrix and rank index
//   - match/trace/: decision-trace recording
//
// # Algorithm
//
// Applicants are queued in load order. Each iteration pops one applicant,
// which proposes to the first project in its preference list that it has not
// proposed to yet and whose minimum score it meets. A project below capacity
// admits unconditionally. A full project compares the proposer with its
// lowest-scoring incumbent (earliest admitted among ties): a strictly higher
// score evicts the incumbent, who rejoins the back of the queue if it still
// has preferences left; otherwise the proposer rejoins the back of the queue.
//
// The run stops when the queue is empty or every queued applicant has
// proposed to its whole list. The iteration budget is a safety bound only.
package match

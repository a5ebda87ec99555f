// Package insights computes the read-only summary served by GET /insights.
//
// Compute is a pure function over a task snapshot and a reference time. It
// never fails: tasks with unparseable due dates or unknown enum values are
// skipped or defaulted individually, and the result is always complete.
//
// Counting uses Tally, an insertion-ordered counter. Ties for the busiest
// day and for the top priority both go to the key that was first seen
// while iterating the tasks.
package insights

// Package history provides SQLite-backed durable storage for interaction
// histories.
//
// The store is a keyed append-only log: one entry per composite
// "{user}@{route}" key, each entry holding an insertion-ordered sequence
// of captured records. Entries are created lazily on first append and
// mutated only by append (push) or delete (filter-and-rewrite); an entry
// whose last record is deleted is removed outright.
//
// # Critical Patterns
//
//   - Record order is capture order, independent of timestamps.
//     Timestamps are monotonically non-decreasing per process but may tie;
//     a separate sort over them is the query engine's job.
//   - Keys are NFC-normalized before use so composed and decomposed
//     spellings of the same user/route collapse to one entry.
//   - Every mutation is a read-modify-write inside a transaction on a
//     single-connection pool, so interleaved appends on one key serialize
//     instead of last-write-wins.
//   - With a per-element cap configured, an append that would exceed the
//     cap fails with CapacityError and performs no write.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
package history

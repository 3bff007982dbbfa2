// Package kvstore is the local key/value persistence layer: the durable
// counterpart of a browser's local storage. Values are opaque bytes, keys are
// strings chosen by the services (see services.UserKey and services.TasksKey).
//
// Two implementations are provided:
//
//   - SQLiteRepository: the kvstore table created by the embedded migrations,
//     over a dbx.DBTX so it works both on *sql.DB and inside a transaction.
//   - MemoryRepository: a map guarded by a mutex, for tests and ephemeral runs.
//
// Get reports a missing key with common.ErrorNotFound.
package kvstore

// internal/repository/db_executor.go
package repository

import "cashless-wallet/pkg/db"

// DBExecutor is the set of database operations repositories run against.
// It is satisfied by both *sqlx.DB and *sqlx.Tx, so every repository method
// can operate on a plain connection or inside an atomic unit started by
// db.Transactor, depending on what the caller passes.
type DBExecutor = db.Executor

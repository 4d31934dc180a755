package spot

import (
	"context"
	"database/sql"

	"github.com/AmeenKassem/EasyPark/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works over a
// plain *sql.DB, an instrumented pool, or an in-flight transaction.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions. Supports *sql.DB and *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}

package dbx

import (
	"database/sql"
	"testing"
)

func TestDBTXSatisfiedByDBAndTx(t *testing.T) {
	var _ DBTX = (*sql.DB)(nil)
	var _ DBTX = (*sql.Tx)(nil)
}

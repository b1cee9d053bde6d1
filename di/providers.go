package di

import (
	"hotel/infras/postgres"
	cashflowService "hotel/internal/domains/cashflow/service"
)

// ProvideTxBeginner exposes the write side of the connection as the
// transaction opener used by services that own multi-row transactions.
func ProvideTxBeginner(db *postgres.Connection) cashflowService.TxBeginner {
	return db.Write
}

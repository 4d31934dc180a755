package payment

import (
	"github.com/AmeenKassem/EasyPark/pkg/dbmetrics"
)

type (
	DBExecutor = dbmetrics.DBExecutor
	TxExecutor = dbmetrics.TxExecutor
)

package booking

import "github.com/m04kA/SMC-TestDriveService/pkg/txmanager"

// DBExecutor интерфейс для выполнения запросов (*sql.DB или *sql.Tx)
type DBExecutor = txmanager.DBExecutor

package appointment

import "github.com/iglimehmetaj/service-platform2/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor

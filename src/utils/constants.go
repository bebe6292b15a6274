package utils

const ShortSlashDateLayout = "2006/01/02"
const ShortDashDateLayout = "2006-01-02"

// spreadsheet serial dates count days from this base (1900 date system)
const (
	ExcelEpochYear  = 1899
	ExcelEpochMonth = 12
	ExcelEpochDay   = 30
)

// 9999-12-31, the last date a spreadsheet can hold
const ExcelMaxSerial = 2958465

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

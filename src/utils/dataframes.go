package utils

//nolint:depguard
import (
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// NewStringDataFrame builds a DataFrame of string columns. Short rows are
// padded with empty cells.
func NewStringDataFrame(columns []string, rows [][]string) dataframe.DataFrame {
	cols := make([]series.Series, len(columns))
	for i, name := range columns {
		values := make([]string, len(rows))
		for j, r := range rows {
			if i < len(r) {
				values[j] = r[i]
			}
		}
		cols[i] = series.New(values, series.String, name)
	}
	return dataframe.New(cols...)
}

// WriteDataFrameCSV writes df with its header row.
func WriteDataFrameCSV(w io.Writer, df dataframe.DataFrame) error {
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}

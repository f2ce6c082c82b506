package nse

import (
	"fmt"
	"time"
)

const nifty50FileName = "ind_nifty50list.csv"

// RemoteFileName derives the file name of the artifact as served by the
// archive, before any extraction. For options this is the zip name.
func RemoteFileName(s Source, date time.Time) (string, error) {
	cfg, err := Lookup(s)
	if err != nil {
		return "", err
	}

	switch s {
	case SourceNifty50:
		return nifty50FileName, nil
	case SourceIndices:
		return fmt.Sprintf("ind_close_all_%s.csv", EncodeDate(date, cfg.DateFormat)), nil
	case SourceStocks:
		return fmt.Sprintf("sec_bhavdata_full_%s.csv", EncodeDate(date, cfg.DateFormat)), nil
	case SourceMarketActivity:
		return fmt.Sprintf("MA%s.csv", EncodeDate(date, cfg.DateFormat)), nil
	case SourceOptions:
		return fmt.Sprintf("fo%s.zip", EncodeDate(date, cfg.DateFormat)), nil
	}
	return "", fmt.Errorf("no file name rule for source %q", s)
}

// LocalFileName derives the final on-disk file name, after extraction for
// zip sources. For every source except options it matches RemoteFileName.
func LocalFileName(s Source, date time.Time) (string, error) {
	if s == SourceOptions {
		return OptionsCSVName(date), nil
	}
	return RemoteFileName(s, date)
}

// OptionsCSVName is the name of the csv extracted from an options archive.
func OptionsCSVName(date time.Time) string {
	return fmt.Sprintf("op%s.csv", EncodeDate(date, DateFormatDDMMYYYY))
}

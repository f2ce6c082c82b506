package nse

import (
	"fmt"
	"strings"
	"time"

	errpkg "github.com/nsedata/downloader/internal/errors"
)

// Source identifies one of the fixed NSE data categories.
type Source string

const (
	SourceNifty50        Source = "nifty50"
	SourceIndices        Source = "indices"
	SourceStocks         Source = "stocks"
	SourceMarketActivity Source = "marketActivity"
	SourceOptions        Source = "options"
)

// DateFormat is the encoding used when substituting a date into a URL
// template or file name.
type DateFormat string

const (
	// DateFormatDDMMYYYY encodes 15/01/2024 as "15012024".
	DateFormatDDMMYYYY DateFormat = "02012006"
	// DateFormatDDMMYY encodes 15/01/2024 as "150124". Only market
	// activity files use the 2-digit year.
	DateFormatDDMMYY DateFormat = "020106"
)

// SourceConfig describes how files for one data source are located on the
// NSE archive servers and where they land locally.
type SourceConfig struct {
	Name         string
	Folder       string
	URLTemplate  string
	RequiresDate bool
	IsZip        bool
	DateFormat   DateFormat
}

var sources = map[Source]SourceConfig{
	SourceNifty50: {
		Name:         "Nifty 50 List",
		Folder:       "broad",
		URLTemplate:  "https://archives.nseindia.com/content/indices/ind_nifty50list.csv",
		RequiresDate: false,
	},
	SourceIndices: {
		Name:         "Indices Data",
		Folder:       "indices",
		URLTemplate:  "https://archives.nseindia.com/content/indices/ind_close_all_{date}.csv",
		RequiresDate: true,
		DateFormat:   DateFormatDDMMYYYY,
	},
	SourceStocks: {
		Name:         "Stocks Data",
		Folder:       "stock",
		URLTemplate:  "https://archives.nseindia.com/products/content/sec_bhavdata_full_{date}.csv",
		RequiresDate: true,
		DateFormat:   DateFormatDDMMYYYY,
	},
	SourceMarketActivity: {
		Name:         "Market Activity",
		Folder:       "ma",
		URLTemplate:  "https://archives.nseindia.com/archives/equities/mkt/MA{date}.csv",
		RequiresDate: true,
		DateFormat:   DateFormatDDMMYY,
	},
	SourceOptions: {
		Name:         "Options Data",
		Folder:       "option",
		URLTemplate:  "https://archives.nseindia.com/archives/fo/mkt/fo{date}.zip",
		RequiresDate: true,
		IsZip:        true,
		DateFormat:   DateFormatDDMMYYYY,
	},
}

// Lookup returns the configuration for a source.
func Lookup(s Source) (SourceConfig, error) {
	cfg, ok := sources[s]
	if !ok {
		return SourceConfig{}, fmt.Errorf("%w: %q", errpkg.ErrUnknownSource, s)
	}
	return cfg, nil
}

// Valid reports whether s names a known data source.
func Valid(s Source) bool {
	_, ok := sources[s]
	return ok
}

// EncodeDate renders a date in the given URL/file-name encoding.
func EncodeDate(date time.Time, format DateFormat) string {
	return date.Format(string(format))
}

// URL resolves the remote URL for a source on a given date. The date is
// ignored for sources that do not require one.
func URL(s Source, date time.Time) (string, error) {
	cfg, err := Lookup(s)
	if err != nil {
		return "", err
	}
	if !cfg.RequiresDate {
		return cfg.URLTemplate, nil
	}
	return strings.Replace(cfg.URLTemplate, "{date}", EncodeDate(date, cfg.DateFormat), 1), nil
}

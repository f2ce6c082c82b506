package nse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errpkg "github.com/nsedata/downloader/internal/errors"
)

var testDate = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

func TestEncodeDate(t *testing.T) {
	assert.Equal(t, "15012024", EncodeDate(testDate, DateFormatDDMMYYYY))
	assert.Equal(t, "150124", EncodeDate(testDate, DateFormatDDMMYY))
}

func TestURL_DateSubstitution(t *testing.T) {
	tests := []struct {
		source Source
		want   string
	}{
		{SourceNifty50, "https://archives.nseindia.com/content/indices/ind_nifty50list.csv"},
		{SourceIndices, "https://archives.nseindia.com/content/indices/ind_close_all_15012024.csv"},
		{SourceStocks, "https://archives.nseindia.com/products/content/sec_bhavdata_full_15012024.csv"},
		{SourceMarketActivity, "https://archives.nseindia.com/archives/equities/mkt/MA150124.csv"},
		{SourceOptions, "https://archives.nseindia.com/archives/fo/mkt/fo15012024.zip"},
	}

	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			got, err := URL(tt.source, testDate)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestURL_UnknownSource(t *testing.T) {
	_, err := URL(Source("bonds"), testDate)
	assert.ErrorIs(t, err, errpkg.ErrUnknownSource)
}

func TestLookup_Folders(t *testing.T) {
	want := map[Source]string{
		SourceNifty50:        "broad",
		SourceIndices:        "indices",
		SourceStocks:         "stock",
		SourceMarketActivity: "ma",
		SourceOptions:        "option",
	}

	for source, folder := range want {
		cfg, err := Lookup(source)
		assert.NoError(t, err)
		assert.Equal(t, folder, cfg.Folder)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(SourceOptions))
	assert.False(t, Valid(Source("futures")))
}

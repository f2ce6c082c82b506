package nse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemoteFileName(t *testing.T) {
	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		source Source
		want   string
	}{
		{SourceNifty50, "ind_nifty50list.csv"},
		{SourceIndices, "ind_close_all_05032024.csv"},
		{SourceStocks, "sec_bhavdata_full_05032024.csv"},
		{SourceMarketActivity, "MA050324.csv"},
		{SourceOptions, "fo05032024.zip"},
	}

	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			got, err := RemoteFileName(tt.source, d)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalFileName_OptionsPostExtraction(t *testing.T) {
	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	got, err := LocalFileName(SourceOptions, d)
	assert.NoError(t, err)
	assert.Equal(t, "op05032024.csv", got)
}

func TestLocalFileName_MatchesRemoteForNonZip(t *testing.T) {
	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	for _, s := range []Source{SourceNifty50, SourceIndices, SourceStocks, SourceMarketActivity} {
		remote, err := RemoteFileName(s, d)
		assert.NoError(t, err)
		local, err := LocalFileName(s, d)
		assert.NoError(t, err)
		assert.Equal(t, remote, local)
	}
}

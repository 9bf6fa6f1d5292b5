package forecast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/kickcast/pkg/forecast"
)

func TestParseSeason(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{2023, 2023},
		{"2023", 2023},
		{"2023/2024", 2023},
		{"2023-2024", 2023},
		{"2023/24", 2023},
		{"2023-24", 2023},
		{" 2019/2020 ", 2019},
		{float64(2021), 2021},
	}

	for _, tc := range cases {
		got, err := forecast.ParseSeason(tc.in)
		require.NoError(t, err, "input %v", tc.in)
		assert.Equal(t, tc.want, got, "input %v", tc.in)
	}
}

func TestParseSeasonRejectsGarbage(t *testing.T) {
	for _, in := range []any{nil, "", "abcd", "23/24", "20231", "9999"} {
		_, err := forecast.ParseSeason(in)
		assert.Error(t, err, "input %v", in)
	}
}

func TestSeasonLabel(t *testing.T) {
	assert.Equal(t, "2023/2024", forecast.SeasonLabel(2023))
}

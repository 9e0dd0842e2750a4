package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"1981-02-20"`), &d))
	require.True(t, d.Equal(NewDate(1981, time.February, 20)))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.JSONEq(t, `"1981-02-20"`, string(b))
}

func TestDate_UnmarshalRejects(t *testing.T) {
	for _, raw := range []string{`"20/02/1981"`, `19810220`, `"1981-13-01"`} {
		var d Date
		require.Error(t, json.Unmarshal([]byte(raw), &d), raw)
	}
}

func TestDate_Scan(t *testing.T) {
	cases := []any{
		time.Date(2020, time.January, 1, 15, 4, 5, 0, time.UTC),
		"2020-01-01",
		[]byte("2020-01-01 00:00:00+00:00"),
	}
	for _, src := range cases {
		var d Date
		require.NoError(t, d.Scan(src))
		require.Equal(t, "2020-01-01", d.String())
	}

	var d Date
	require.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := NewDate(1999, time.December, 31).Value()
	require.NoError(t, err)
	require.Equal(t, "1999-12-31", v)
}

package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 5)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)

	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.True(t, empty.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"05/03/2024"`), &back))
}

func TestDebtPaidDateJSON(t *testing.T) {
	var open Debt
	require.NoError(t, json.Unmarshal([]byte(`{"customer_id":1,"amount":10,"date":"2024-03-05","paid_date":null}`), &open))
	assert.Nil(t, open.PaidDate)

	b, err := json.Marshal(open)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"paid_date":null`)

	var paid Debt
	require.NoError(t, json.Unmarshal([]byte(`{"customer_id":1,"amount":10,"date":"2024-03-05","paid_date":"2024-04-01"}`), &paid))
	require.NotNil(t, paid.PaidDate)
	assert.Equal(t, NewDate(2024, time.April, 1), *paid.PaidDate)
}

func TestDateScanAndValue(t *testing.T) {
	cases := []struct {
		name string
		src  any
		want Date
	}{
		{"time", time.Date(2024, 3, 5, 23, 59, 0, 0, time.FixedZone("EAT", 3*3600)), NewDate(2024, time.March, 5)},
		{"string", "2024-03-05", NewDate(2024, time.March, 5)},
		{"bytes with time", []byte("2024-03-05T00:00:00Z"), NewDate(2024, time.March, 5)},
		{"null", nil, Date{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tc.src))
			assert.Equal(t, tc.want, d)
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))

	v, err := NewDate(2024, time.March, 5).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", v)
}

func TestTimestampJSON(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC))

	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05T14:30:00"`, string(b))

	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"plain", `"2024-03-05T14:30:00"`, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)},
		{"space separated", `"2024-03-05 14:30:00"`, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)},
		{"rfc3339 keeps wall clock", `"2024-03-05T14:30:00+05:00"`, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)},
		{"rfc3339 utc", `"2024-03-05T14:30:00.5Z"`, time.Date(2024, 3, 5, 14, 30, 0, 500000000, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got Timestamp
			require.NoError(t, json.Unmarshal([]byte(tc.in), &got))
			assert.Equal(t, tc.want, got.Time)
		})
	}

	var bad Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &bad))
}

func TestTimestampKeepsMicroseconds(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 3, 5, 14, 30, 0, 123456000, time.UTC))

	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05T14:30:00.123456"`, string(b))

	var back Timestamp
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, ts, back)

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05 14:30:00.123456", v)

	var scanned Timestamp
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, ts, scanned)
}

func TestTimestampScan(t *testing.T) {
	var ts Timestamp
	require.NoError(t, ts.Scan(time.Date(2024, 3, 5, 14, 30, 0, 0, time.FixedZone("EAT", 3*3600))))
	assert.Equal(t, "2024-03-05 14:30:00", ts.String())

	require.NoError(t, ts.Scan([]byte("2024-03-05 08:00:00")))
	assert.Equal(t, "2024-03-05 08:00:00", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(3.14))
}

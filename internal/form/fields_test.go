package form

import (
	"encoding/json"
	"errors"
	"testing"

	"stockprofit/internal/prediction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_Request(t *testing.T) {
	tests := []struct {
		name    string
		fields  Fields
		want    prediction.Request
		wantMsg string
	}{
		{
			name:   "valid",
			fields: Fields{Ticker: "AAPL", PurchaseDate: "2020-01-02", Shares: "10"},
			want:   prediction.Request{Ticker: "AAPL", PurchaseDate: "2020-01-02", Shares: 10},
		},
		{
			name:   "ticker and date sent as typed",
			fields: Fields{Ticker: " msft ", PurchaseDate: "2019-06-30 ", Shares: " 3"},
			want:   prediction.Request{Ticker: " msft ", PurchaseDate: "2019-06-30 ", Shares: 3},
		},
		{
			name:   "whitespace-only ticker counts as present",
			fields: Fields{Ticker: " ", PurchaseDate: "2020-01-02", Shares: "10"},
			want:   prediction.Request{Ticker: " ", PurchaseDate: "2020-01-02", Shares: 10},
		},
		{
			name:    "whitespace-only shares is not a number",
			fields:  Fields{Ticker: "AAPL", PurchaseDate: "2020-01-02", Shares: "  "},
			wantMsg: MsgSharesInvalid,
		},
		{
			name:   "no range check on shares",
			fields: Fields{Ticker: "T", PurchaseDate: "d", Shares: "-5"},
			want:   prediction.Request{Ticker: "T", PurchaseDate: "d", Shares: -5},
		},
		{
			name:    "empty ticker",
			fields:  Fields{PurchaseDate: "2020-01-02", Shares: "10"},
			wantMsg: MsgFieldsRequired,
		},
		{
			name:    "empty date",
			fields:  Fields{Ticker: "AAPL", Shares: "10"},
			wantMsg: MsgFieldsRequired,
		},
		{
			name:    "empty shares",
			fields:  Fields{Ticker: "AAPL", PurchaseDate: "2020-01-02"},
			wantMsg: MsgFieldsRequired,
		},
		{
			name:    "non-numeric shares",
			fields:  Fields{Ticker: "AAPL", PurchaseDate: "2020-01-02", Shares: "ten"},
			wantMsg: MsgSharesInvalid,
		},
		{
			name:    "trailing garbage in shares",
			fields:  Fields{Ticker: "AAPL", PurchaseDate: "2020-01-02", Shares: "10abc"},
			wantMsg: MsgSharesInvalid,
		},
		{
			name:    "fractional shares",
			fields:  Fields{Ticker: "AAPL", PurchaseDate: "2020-01-02", Shares: "1.5"},
			wantMsg: MsgSharesInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fields.Request()
			if tt.wantMsg != "" {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
				assert.Equal(t, tt.wantMsg, verr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFields_Request_SharesEncodedAsNumber(t *testing.T) {
	req, err := Fields{Ticker: "AAPL", PurchaseDate: "2020-01-02", Shares: "10"}.Request()
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ticker":"AAPL","purchase_date":"2020-01-02","shares":10}`, string(data))
}

// Package form implements the stock purchase form controller: it validates
// the three form fields, submits one prediction request and shows the result
// on a display surface.
package form

import (
	"strconv"
	"strings"

	"stockprofit/internal/prediction"
)

// Validation messages shown through the Alerter.
const (
	MsgFieldsRequired = "All fields are required."
	MsgSharesInvalid  = "Shares must be a whole number."
)

// Fields are the raw values of the form inputs.
type Fields struct {
	Ticker       string
	PurchaseDate string
	Shares       string
}

// ValidationError is reported through the Alerter instead of the output surface.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Request validates f and builds the prediction request.
// A field is missing only when it is empty; ticker and date are sent as typed.
// Shares may carry surrounding whitespace but must parse as a base-10 integer.
// No symbol, date or range validation is done.
func (f Fields) Request() (prediction.Request, error) {
	if f.Ticker == "" || f.PurchaseDate == "" || f.Shares == "" {
		return prediction.Request{}, &ValidationError{Message: MsgFieldsRequired}
	}

	n, err := strconv.Atoi(strings.TrimSpace(f.Shares))
	if err != nil {
		return prediction.Request{}, &ValidationError{Message: MsgSharesInvalid}
	}

	return prediction.Request{
		Ticker:       f.Ticker,
		PurchaseDate: f.PurchaseDate,
		Shares:       n,
	}, nil
}

// Package prediction holds the wire types and HTTP client for the stock
// profit prediction endpoint.
package prediction

import "fmt"

// Request is the body posted to the prediction endpoint.
type Request struct {
	Ticker       string `json:"ticker"`
	PurchaseDate string `json:"purchase_date"`
	Shares       int    `json:"shares"`
}

// Response is the body returned on success. Text is nil when the
// endpoint omits the field.
type Response struct {
	Text *string `json:"response"`
}

// StatusError is returned for any non-2xx reply. Body is the raw reply text.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("prediction endpoint returned status %d: %s", e.Code, e.Body)
}

// TransportError is returned when no reply was received. Its message is the
// underlying cause without the method and URL prefix net/http adds.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

package models

// TickerRequest binds the ?ticker= query parameter.
type TickerRequest struct {
	Ticker string `query:"ticker" validate:"required,min=1,max=10"`
}

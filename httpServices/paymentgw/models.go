package paymentgw

// ChargeRequest is the gateway's charge-creation payload. Amount is in
// minor units (e.g. cents).
type ChargeRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ChargeResponse carries the client-side completion handle.
type ChargeResponse struct {
	ClientSecret string `json:"client_secret"`
}

package entity

const DefaultPaymentMethod = "cash"

// Payment records money received from a client.
type Payment struct {
	ID        string  `json:"id"`
	ClientID  string  `json:"client_id"`
	Date      string  `json:"date"`
	Method    string  `json:"method"`
	Note      string  `json:"note"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

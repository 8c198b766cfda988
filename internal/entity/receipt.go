package entity

// Receipt records money owed by a client for a delivery.
type Receipt struct {
	ID        string  `json:"id"`
	ClientID  string  `json:"client_id"`
	Date      string  `json:"date"`
	Driver    string  `json:"driver"`
	Car       string  `json:"car"`
	City      string  `json:"city"`
	Note      string  `json:"note"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

package entity

// Cost is a computed production cost. All amounts are integer KRW;
// VAT is floor(subtotal * 10%).
type Cost struct {
	Subtotal int `json:"subtotal"`
	VAT      int `json:"vat"`
	Total    int `json:"total"`
}

package entity

// Vendor is one row of the vendors tab. The plaintext PIN is kept next to
// the bcrypt hash so the admin screen can display it; a deliberate
// product decision, not an oversight.
type Vendor struct {
	VendorID   string `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
	PIN        string `json:"pin"`
	PINHashB64 string `json:"pin_hash_b64"`
	IsActive   string `json:"is_active"` // "TRUE"/"FALSE"; blank means active
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// VendorPricing is one override row of the vendor_pricing tab, keyed by
// (vendor_id, item_type, item_name).
type VendorPricing struct {
	VendorID  string `json:"vendor_id"`
	ItemType  string `json:"item_type"` // page | binding | finishing
	ItemName  string `json:"item_name"`
	UnitPrice string `json:"unit_price"`
	Unit      string `json:"unit"`
	Notes     string `json:"notes"`
}

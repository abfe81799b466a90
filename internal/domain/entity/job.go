package entity

// Job is one row of the jobs_raw tab: a production order. Snapshots are
// immutable JSON copies taken at creation/edit time; they do not follow
// later edits to the spec table.
type Job struct {
	JobID            string `json:"job_id"`
	CreatedAt        string `json:"created_at"`
	RequesterName    string `json:"requester_name"`
	MediaID          string `json:"media_id"`
	MediaName        string `json:"media_name"`
	Vendor           string `json:"vendor"`
	VendorID         string `json:"vendor_id"`
	DueDate          string `json:"due_date"`
	Qty              string `json:"qty"`
	FileLink         string `json:"file_link"`
	ChangesNote      string `json:"changes_note"`
	Status           string `json:"status"`
	SpecSnapshot     string `json:"spec_snapshot"`
	LastUpdatedAt    string `json:"last_updated_at"`
	LastUpdatedBy    string `json:"last_updated_by"`
	OrderType        string `json:"order_type"`
	TypeSpecSnapshot string `json:"type_spec_snapshot"`
	ProductionCost   string `json:"production_cost"`
}

// JobFilter is the in-memory filter pipeline applied by JobStore.List.
// Vendor matches either the vendor display name or the vendor_id.
type JobFilter struct {
	Month   string // "YYYY-MM" against created_at
	Status  string
	Vendor  string
	MediaID string
	Query   string // case-insensitive substring over job_id/requester_name/media_name
}

package entity

// Spec is one row of the spec_master tab: the reusable print specification
// template for a media title. All cells are kept as strings, the way the
// sheet stores them.
type Spec struct {
	MediaID           string `json:"media_id"`
	MediaName         string `json:"media_name"`
	DefaultVendor     string `json:"default_vendor"`
	TrimSize          string `json:"trim_size"`
	CoverType         string `json:"cover_type"`
	CoverPaper        string `json:"cover_paper"`
	CoverPrint        string `json:"cover_print"`
	InnerPages        string `json:"inner_pages"`
	InnerPaper        string `json:"inner_paper"`
	InnerPrint        string `json:"inner_print"`
	Binding           string `json:"binding"`
	Finishing         string `json:"finishing"`
	PackagingDelivery string `json:"packaging_delivery"`
	FileRule          string `json:"file_rule"`

	// AdditionalInnerPages is stored serialized in a single cell.
	AdditionalInnerPages []AdditionalInnerPage `json:"additional_inner_pages,omitempty"`
}

// AdditionalInnerPage is one extra inner-page block (inserts, color sections).
type AdditionalInnerPage struct {
	Type  string `json:"type"`
	Pages string `json:"pages"`
	Paper string `json:"paper"`
	Print string `json:"print"`
}

package constants

import "time"

// Sheet tab names inside the backing spreadsheet.
const (
	SpecSheet          = "spec_master"
	JobsSheet          = "jobs_raw"
	VendorsSheet       = "vendors"
	VendorPricingSheet = "vendor_pricing"
)

// Column spans per tab. Versioned: the jobs tab started at A:P and grew
// to A:R when vendor_id and production_cost were added.
const (
	SpecColSpan          = "A:O"
	JobColSpan           = "A:R"
	VendorColSpan        = "A:G"
	VendorPricingColSpan = "A:F"
)

// Job lifecycle statuses.
const (
	StatusReceived   = "접수"
	StatusInProgress = "진행"
	StatusDelivered  = "납품"
	StatusInspected  = "검수완료"
	StatusDone       = "완료"
)

// JobStatuses is the fixed status set, in lifecycle order.
var JobStatuses = []string{
	StatusReceived,
	StatusInProgress,
	StatusDelivered,
	StatusInspected,
	StatusDone,
}

// Order types.
const (
	OrderTypeBook  = "book"
	OrderTypeSheet = "sheet"
)

// Pricing defaults in KRW, used when the vendor has no override row.
const (
	// DefaultPagePrice per printed page
	DefaultPagePrice = 300

	// DefaultCoatingPrice per coated face
	DefaultCoatingPrice = 500

	// DefaultEpoxyPrice flat per distinct design
	DefaultEpoxyPrice = 120000

	// DefaultPerfectBindPrice per copy (무선제본)
	DefaultPerfectBindPrice = 2000

	// DefaultSaddleStitchPrice per copy (중철제본)
	DefaultSaddleStitchPrice = 1500
)

// Vendor pricing item types.
const (
	ItemTypePage      = "page"
	ItemTypeBinding   = "binding"
	ItemTypeFinishing = "finishing"
)

// Vendor pricing item names.
const (
	ItemCover       = "표지"
	ItemInner       = "내지"
	ItemLooseSheet  = "낱장"
	ItemPerfectBind = "무선제본"
	ItemSaddleBind  = "중철제본"
	ItemEpoxy       = "에폭시"
	ItemCoating     = "코팅"
)

const (
	// SpecCacheTTL read-cache lifetime for the spec table
	SpecCacheTTL = 60 * time.Second

	// JobLookupAttempts bounded retries absorbing read-after-write lag on job lookup
	JobLookupAttempts = 2

	// JobLookupDelay wait between job lookup attempts
	JobLookupDelay = 800 * time.Millisecond
)

const (
	// PINLength vendor PINs are fixed-length digit strings
	PINLength = 6

	// PINHashCost bcrypt cost for vendor PIN hashes
	PINHashCost = 10
)

package repository

import (
	"context"

	"github.com/yourusername/print-order-board/internal/domain/entity"
)

// SpecRepository is the spec_master table facade.
type SpecRepository interface {
	// List returns every spec row; results may be served from the read cache.
	List(ctx context.Context) ([]entity.Spec, error)

	// GetByMediaID returns nil when the key is absent.
	GetByMediaID(ctx context.Context, mediaID string) (*entity.Spec, error)

	// Append adds a row and invalidates the read cache before returning.
	Append(ctx context.Context, spec entity.Spec) error

	// UpdatePartial merges the patch (keyed by column name) onto the live
	// row and writes the full row back. Returns false when the key is absent.
	UpdatePartial(ctx context.Context, mediaID string, patch map[string]string) (bool, error)
}

// JobRepository is the jobs_raw table facade.
type JobRepository interface {
	List(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error)

	// GetByID retries a bounded number of times to absorb read-after-write
	// lag in the backing store. Nil after the budget is authoritative.
	GetByID(ctx context.Context, jobID string) (*entity.Job, error)

	// Create stamps job_id/created_at/last_updated_at and appends the row,
	// returning the stored record.
	Create(ctx context.Context, job entity.Job) (*entity.Job, error)

	// UpdateStatusFields patches status/last_updated_by/production_cost only,
	// always stamping a fresh last_updated_at.
	UpdateStatusFields(ctx context.Context, jobID string, patch map[string]string) (bool, error)

	// UpdateContent is the same pattern over the editable content fields.
	UpdateContent(ctx context.Context, jobID string, patch map[string]string) (bool, error)
}

// VendorRepository is the vendors table facade.
type VendorRepository interface {
	// List returns active vendors only.
	List(ctx context.Context) ([]entity.Vendor, error)

	// GetByID returns the vendor regardless of active state; nil when absent.
	GetByID(ctx context.Context, vendorID string) (*entity.Vendor, error)

	// Create generates the vendor_id, hashes the PIN and appends the row.
	Create(ctx context.Context, vendorName, pin string) (*entity.Vendor, error)

	// Update merges the patch; a "pin" key re-hashes the credential.
	Update(ctx context.Context, vendorID string, patch map[string]string) (bool, error)

	// Delete removes the row itself (dimension delete), shifting later rows up.
	Delete(ctx context.Context, vendorID string) (bool, error)
}

// VendorPricingRepository is the vendor_pricing table facade.
type VendorPricingRepository interface {
	ListByVendor(ctx context.Context, vendorID string) ([]entity.VendorPricing, error)

	// Lookup returns (price, true) for an override, or ok=false when no
	// override exists and the engine default applies.
	Lookup(ctx context.Context, vendorID, itemType, itemName string) (int, bool, error)
}

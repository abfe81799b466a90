package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/print-order-board/internal/domain/constants"
	"github.com/yourusername/print-order-board/internal/domain/entity"
	"github.com/yourusername/print-order-board/internal/domain/repository"
	"github.com/yourusername/print-order-board/internal/pkg/logger"
)

// ErrUnknownMedia is returned when a book order names a media_id with no
// spec_master row.
var ErrUnknownMedia = fmt.Errorf("unknown media_id")

// DefaultSheetMediaName labels loose-sheet orders, which carry no media row.
const DefaultSheetMediaName = "낱장 인쇄물"

// Notifier announces order events to an external channel. Implementations
// must be safe to skip: the usecase calls them best-effort.
type Notifier interface {
	JobCreated(ctx context.Context, job entity.Job, cost *entity.Cost)
	JobStatusChanged(ctx context.Context, job entity.Job, prevStatus string)
}

// AuditTrail records order events in durable storage, best-effort.
type AuditTrail interface {
	Record(ctx context.Context, jobID, event, actor, detail string)
}

// CreateOrderInput carries the form fields of a new order. Book orders
// reference a media_id; sheet orders carry an ad-hoc SheetSpec instead.
type CreateOrderInput struct {
	OrderType     string
	RequesterName string
	MediaID       string
	Vendor        string // display name; blank on book orders falls back to the spec's default
	DueDate       string
	Qty           string
	FileLink      string
	ChangesNote   string
	SheetSpec     *entity.SheetSpec
}

// OrderService is the application layer over the sheet-backed stores. It
// owns snapshotting, vendor resolution and cost computation; the stores
// stay pricing-free.
type OrderService struct {
	specs   repository.SpecRepository
	jobs    repository.JobRepository
	vendors repository.VendorRepository
	pricing *PricingEngine
	notify  Notifier   // may be nil
	audit   AuditTrail // may be nil
	log     *logger.Logger
}

func NewOrderService(
	specs repository.SpecRepository,
	jobs repository.JobRepository,
	vendors repository.VendorRepository,
	pricing *PricingEngine,
	notify Notifier,
	audit AuditTrail,
	log *logger.Logger,
) *OrderService {
	return &OrderService{
		specs:   specs,
		jobs:    jobs,
		vendors: vendors,
		pricing: pricing,
		notify:  notify,
		audit:   audit,
		log:     log,
	}
}

// CreateOrder validates the input, snapshots the spec, resolves the
// vendor, computes the production cost and stores the job. Notification
// and audit are best-effort after the write.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.Job, error) {
	if strings.TrimSpace(in.RequesterName) == "" {
		return nil, fmt.Errorf("requester_name required")
	}
	if strings.TrimSpace(in.DueDate) == "" {
		return nil, fmt.Errorf("due_date required")
	}
	if positiveInt(in.Qty, 0) < 1 {
		return nil, fmt.Errorf("qty must be a positive number")
	}

	job := entity.Job{
		RequesterName: strings.TrimSpace(in.RequesterName),
		DueDate:       strings.TrimSpace(in.DueDate),
		Qty:           strings.TrimSpace(in.Qty),
		FileLink:      strings.TrimSpace(in.FileLink),
		ChangesNote:   strings.TrimSpace(in.ChangesNote),
		Vendor:        strings.TrimSpace(in.Vendor),
		Status:        constants.StatusReceived,
		LastUpdatedBy: strings.TrimSpace(in.RequesterName),
	}

	switch in.OrderType {
	case constants.OrderTypeBook, "":
		job.OrderType = constants.OrderTypeBook
		spec, err := s.specs.GetByMediaID(ctx, in.MediaID)
		if err != nil {
			return nil, err
		}
		if spec == nil {
			return nil, ErrUnknownMedia
		}
		snapshot, err := json.Marshal(spec)
		if err != nil {
			return nil, fmt.Errorf("spec snapshot: %w", err)
		}
		job.MediaID = spec.MediaID
		job.MediaName = spec.MediaName
		job.SpecSnapshot = string(snapshot)
		if job.Vendor == "" {
			job.Vendor = spec.DefaultVendor
		}
	case constants.OrderTypeSheet:
		job.OrderType = constants.OrderTypeSheet
		job.MediaID = constants.OrderTypeSheet
		job.MediaName = DefaultSheetMediaName
		if in.SheetSpec != nil {
			snapshot, err := json.Marshal(in.SheetSpec)
			if err != nil {
				return nil, fmt.Errorf("type spec snapshot: %w", err)
			}
			job.TypeSpecSnapshot = string(snapshot)
		}
	default:
		return nil, fmt.Errorf("unknown order_type %q", in.OrderType)
	}

	if err := s.resolveVendorID(ctx, &job); err != nil {
		// Vendor resolution is advisory; the display name still records intent.
		s.log.Warn("vendor resolution failed", "vendor", job.Vendor, "err", err)
	}

	if cost := s.pricing.ComputeJobCost(ctx, job); cost != nil {
		job.ProductionCost = strconv.Itoa(cost.Total)
	}

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Record(ctx, created.JobID, "created", created.RequesterName, created.Status)
	}
	if s.notify != nil {
		s.notify.JobCreated(ctx, *created, s.pricing.ComputeJobCost(ctx, *created))
	}
	return created, nil
}

// UpdateStatus moves a job along the lifecycle. The status must be one of
// the fixed set; production_cost travels with the patch so a manual cost
// adjustment lands atomically with the status change.
func (s *OrderService) UpdateStatus(ctx context.Context, jobID, status, updatedBy, productionCost string) (*entity.Job, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	before, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return nil, nil
	}

	patch := map[string]string{
		"status":          status,
		"last_updated_by": strings.TrimSpace(updatedBy),
	}
	if strings.TrimSpace(productionCost) != "" {
		patch["production_cost"] = strings.TrimSpace(productionCost)
	}
	ok, err := s.jobs.UpdateStatusFields(ctx, jobID, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	after, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if after == nil {
		return nil, nil
	}

	if s.audit != nil {
		s.audit.Record(ctx, jobID, "status_changed", strings.TrimSpace(updatedBy), before.Status+" -> "+status)
	}
	if s.notify != nil {
		s.notify.JobStatusChanged(ctx, *after, before.Status)
	}
	return after, nil
}

// EditOrder merges content edits onto the stored job and recomputes the
// production cost when a cost-relevant field changed. The merged job is
// built locally so the recompute sees the post-edit values.
func (s *OrderService) EditOrder(ctx context.Context, jobID string, patch map[string]string, updatedBy string) (*entity.Job, error) {
	current, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	merged := *current
	applyJobEdit(&merged, patch)

	if err := s.resolveVendorID(ctx, &merged); err != nil {
		s.log.Warn("vendor resolution failed", "vendor", merged.Vendor, "err", err)
	}

	out := make(map[string]string, len(patch)+3)
	for k, v := range patch {
		out[k] = v
	}
	out["vendor_id"] = merged.VendorID
	out["last_updated_by"] = strings.TrimSpace(updatedBy)
	if cost := s.pricing.ComputeJobCost(ctx, merged); cost != nil {
		out["production_cost"] = strconv.Itoa(cost.Total)
	}

	ok, err := s.jobs.UpdateContent(ctx, jobID, out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	if s.audit != nil {
		s.audit.Record(ctx, jobID, "edited", strings.TrimSpace(updatedBy), strconv.Itoa(len(patch))+" fields")
	}
	return s.jobs.GetByID(ctx, jobID)
}

// JobCost returns the cost breakdown for a stored job: the stored total
// when present (so a manual adjustment sticks), recomputed otherwise.
func (s *OrderService) JobCost(ctx context.Context, job entity.Job) *entity.Cost {
	if c := CostFromStored(job.ProductionCost); c != nil {
		return c
	}
	return s.pricing.ComputeJobCost(ctx, job)
}

// resolveVendorID maps the display name onto the active vendor's id.
// Unknown names leave vendor_id blank; deactivated vendors no longer
// resolve.
func (s *OrderService) resolveVendorID(ctx context.Context, job *entity.Job) error {
	name := strings.TrimSpace(job.Vendor)
	if name == "" {
		job.VendorID = ""
		return nil
	}
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return err
	}
	for _, v := range vendors {
		if strings.TrimSpace(v.VendorName) == name || v.VendorID == name {
			job.VendorID = v.VendorID
			job.Vendor = v.VendorName
			return nil
		}
	}
	job.VendorID = ""
	return nil
}

func validStatus(status string) bool {
	for _, s := range constants.JobStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// applyJobEdit overlays the editable content fields onto a job copy so the
// cost recompute sees post-edit values. Key names match the sheet columns.
func applyJobEdit(job *entity.Job, patch map[string]string) {
	for k, v := range patch {
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "requester_name":
			job.RequesterName = v
		case "media_id":
			job.MediaID = v
		case "media_name":
			job.MediaName = v
		case "vendor":
			job.Vendor = v
		case "due_date":
			job.DueDate = v
		case "qty":
			job.Qty = v
		case "file_link":
			job.FileLink = v
		case "changes_note":
			job.ChangesNote = v
		case "order_type":
			job.OrderType = v
		case "spec_snapshot":
			job.SpecSnapshot = v
		case "type_spec_snapshot":
			job.TypeSpecSnapshot = v
		}
	}
}

package sheets

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/yourusername/print-order-board/internal/domain/constants"
	"github.com/yourusername/print-order-board/internal/domain/entity"
	"github.com/yourusername/print-order-board/internal/pkg/logger"
)

// statusPatchColumns is the whitelist for UpdateStatusFields.
var statusPatchColumns = map[string]bool{
	"status":          true,
	"last_updated_by": true,
	"production_cost": true,
}

// contentPatchColumns is the whitelist for UpdateContent (editing an order
// before production starts).
var contentPatchColumns = map[string]bool{
	"requester_name":     true,
	"media_id":           true,
	"media_name":         true,
	"vendor":             true,
	"vendor_id":          true,
	"due_date":           true,
	"qty":                true,
	"file_link":          true,
	"changes_note":       true,
	"order_type":         true,
	"spec_snapshot":      true,
	"type_spec_snapshot": true,
	"production_cost":    true,
	"last_updated_by":    true,
}

// JobStore is the jobs_raw facade.
type JobStore struct {
	client RangeClient
	log    *logger.Logger
	lookup lookupPolicy

	now     func() time.Time
	randInt func(int) int
}

func NewJobStore(client RangeClient, log *logger.Logger) *JobStore {
	return &JobStore{
		client:  client,
		log:     log,
		lookup:  defaultLookupPolicy(constants.JobLookupAttempts, constants.JobLookupDelay),
		now:     time.Now,
		randInt: defaultRandInt,
	}
}

// Create stamps the job and writes it at row count+1. Reading the count
// and writing the next row is a deliberate, documented race: two
// concurrent creators can target the same row. The backing store offers
// no transaction to close that window.
func (s *JobStore) Create(ctx context.Context, job entity.Job) (*entity.Job, error) {
	now := s.now()
	job.JobID = newJobID(now, s.randInt)
	job.CreatedAt = timestamp(now)
	job.LastUpdatedAt = job.CreatedAt
	if job.Status == "" {
		job.Status = constants.StatusReceived
	}

	rows, err := s.client.FetchRange(ctx, constants.JobsSheet, constants.JobColSpan)
	if err != nil {
		return nil, err
	}
	next := len(rows) + 1
	if err := s.client.UpdateRow(ctx, constants.JobsSheet, next, constants.JobColSpan, jobToRow(job)); err != nil {
		return nil, err
	}

	s.log.Info("job created", "job_id", job.JobID, "row", next, "order_type", job.OrderType)
	return &job, nil
}

// GetByID scans for the key with a bounded retry, absorbing the backing
// store's read-after-write lag: a row appended moments ago may not be
// visible to the next read yet. Nil after the budget is authoritative.
func (s *JobStore) GetByID(ctx context.Context, jobID string) (*entity.Job, error) {
	needle := normalizeCell(jobID)
	var found *entity.Job

	err := s.lookup.run(ctx, func(attempt int) (bool, error) {
		rows, err := s.client.FetchRange(ctx, constants.JobsSheet, constants.JobColSpan)
		if err != nil {
			return false, err
		}
		if len(rows) == 0 {
			return false, nil
		}

		header, dataStart, byHeader := tableLayout(rows, "job_id")
		keyCol := 0
		if byHeader {
			keyCol = columnIndex(header, "job_id")
		}
		for i := dataStart; i < len(rows); i++ {
			if normalizeCell(cellAt(rows[i], keyCol)) != needle {
				continue
			}
			var job entity.Job
			if byHeader {
				job = rowToJobByHeader(rows[i], header)
			} else {
				job = rowToJob(rows[i])
			}
			found = &job
			return true, nil
		}
		if attempt > 0 {
			s.log.Warn("job not found", "job_id", jobID, "rows", len(rows), "attempt", attempt+1)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// UpdateStatusFields patches only the whitelisted status columns and
// always stamps a fresh last_updated_at.
func (s *JobStore) UpdateStatusFields(ctx context.Context, jobID string, patch map[string]string) (bool, error) {
	return s.patchJob(ctx, jobID, filterPatch(patch, statusPatchColumns))
}

// UpdateContent is the same pattern over the editable content fields.
func (s *JobStore) UpdateContent(ctx context.Context, jobID string, patch map[string]string) (bool, error) {
	return s.patchJob(ctx, jobID, filterPatch(patch, contentPatchColumns))
}

func (s *JobStore) patchJob(ctx context.Context, jobID string, patch map[string]string) (bool, error) {
	rows, err := s.client.FetchRange(ctx, constants.JobsSheet, constants.JobColSpan)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}

	header, dataStart, byHeader := tableLayout(rows, "job_id")
	keyCol := 0
	if byHeader {
		keyCol = columnIndex(header, "job_id")
	}

	needle := normalizeCell(jobID)
	for i := dataStart; i < len(rows); i++ {
		if normalizeCell(cellAt(rows[i], keyCol)) != needle {
			continue
		}
		var job entity.Job
		if byHeader {
			job = rowToJobByHeader(rows[i], header)
		} else {
			job = rowToJob(rows[i])
		}
		applyJobPatch(&job, patch)
		job.LastUpdatedAt = timestamp(s.now())

		if err := s.client.UpdateRow(ctx, constants.JobsSheet, i+1, constants.JobColSpan, jobToRow(job)); err != nil {
			return false, err
		}
		s.log.Info("job updated", "job_id", jobID, "fields", len(patch))
		return true, nil
	}
	return false, nil
}

// List decodes every row then runs the in-memory filter pipeline, sorted
// by raw created_at string descending. The string sort is only correct
// while all rows share one timestamp format; rows stamped before the
// +09:00 suffix was introduced sort where plain comparison puts them.
func (s *JobStore) List(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error) {
	rows, err := s.client.FetchRange(ctx, constants.JobsSheet, constants.JobColSpan)
	if err != nil {
		return nil, err
	}

	header, dataStart, byHeader := tableLayout(rows, "job_id")
	list := make([]entity.Job, 0, len(rows))
	for i := dataStart; i < len(rows); i++ {
		var job entity.Job
		if byHeader {
			job = rowToJobByHeader(rows[i], header)
		} else {
			job = rowToJob(rows[i])
		}
		if job.JobID == "" {
			continue
		}
		if matchesFilter(job, filter) {
			list = append(list, job)
		}
	}

	sort.SliceStable(list, func(a, b int) bool {
		return list[a].CreatedAt > list[b].CreatedAt
	})
	return list, nil
}

func matchesFilter(j entity.Job, f entity.JobFilter) bool {
	if f.Month != "" && !matchesMonth(j.CreatedAt, f.Month) {
		return false
	}
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	if f.Vendor != "" && j.Vendor != f.Vendor && j.VendorID != f.Vendor {
		return false
	}
	if f.MediaID != "" && j.MediaID != f.MediaID {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(j.JobID), q) &&
			!strings.Contains(strings.ToLower(j.RequesterName), q) &&
			!strings.Contains(strings.ToLower(j.MediaName), q) {
			return false
		}
	}
	return true
}

// matchesMonth compares the "YYYY-MM" prefix when created_at is
// ISO-shaped, falling back to parsing odd legacy formats.
func matchesMonth(createdAt, month string) bool {
	raw := strings.TrimSpace(createdAt)
	if len(raw) >= 7 && isISOMonth(raw[:7]) {
		return raw[:7] == month
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return false
	}
	return t.Format("2006-01") == month
}

func isISOMonth(s string) bool {
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func filterPatch(patch map[string]string, allowed map[string]bool) map[string]string {
	out := make(map[string]string, len(patch))
	for k, v := range patch {
		if allowed[normalizeName(k)] {
			out[normalizeName(k)] = v
		}
	}
	return out
}

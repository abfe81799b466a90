package sheets

import (
	"encoding/json"
	"strings"

	"github.com/yourusername/print-order-board/internal/domain/entity"
)

// The codec converts between sheet rows (ordered string cells) and typed
// records. Two read modes exist per table: positional, for legacy sheets
// without a header row, assuming the oldest known column order; and
// by-header, looking every field up by normalized column name so column
// reordering is harmless. Encoding always emits the full current column
// order, which silently normalizes legacy rows on their next write.

// Current column orders.
var specColumns = []string{
	"media_id", "media_name", "default_vendor", "trim_size", "cover_type",
	"cover_paper", "cover_print", "inner_pages", "inner_paper", "inner_print",
	"binding", "finishing", "packaging_delivery", "file_rule",
	"additional_inner_pages",
}

var jobColumns = []string{
	"job_id", "created_at", "requester_name", "media_id", "media_name",
	"vendor", "vendor_id", "due_date", "qty", "file_link", "changes_note",
	"status", "spec_snapshot", "last_updated_at", "last_updated_by",
	"order_type", "type_spec_snapshot", "production_cost",
}

// Oldest known orders, used for positional decoding only.
var legacySpecColumns = specColumns[:14]

var legacyJobColumns = []string{
	"job_id", "created_at", "requester_name", "media_id", "media_name",
	"vendor", "due_date", "qty", "file_link", "changes_note", "status",
	"spec_snapshot", "last_updated_at", "last_updated_by",
	"order_type", "type_spec_snapshot",
}

var vendorColumns = []string{
	"vendor_id", "vendor_name", "pin", "pin_hash_b64", "is_active",
	"created_at", "updated_at",
}

var pricingColumns = []string{
	"vendor_id", "item_type", "item_name", "unit_price", "unit", "notes",
}

// normalizeName folds a header cell or field name for matching: lowercase,
// trimmed, inner whitespace collapsed to underscores.
func normalizeName(s string) string {
	s = strings.ReplaceAll(s, "\uFEFF", "")
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}

// normalizeCell strips spreadsheet export artifacts (BOM, padding) before
// a cell takes part in key comparison.
func normalizeCell(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\uFEFF", ""))
}

// columnIndex returns the index of name in the header, or -1.
func columnIndex(header []string, name string) int {
	n := normalizeName(name)
	for i, c := range header {
		if normalizeName(c) == n {
			return i
		}
	}
	return -1
}

// cellAt tolerates rows shorter than the schema.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// tableLayout inspects row 0 for the table's key column and reports where
// data starts and which header (if any) governs field lookup.
func tableLayout(rows [][]string, keyColumn string) (header []string, dataStart int, byHeader bool) {
	if len(rows) == 0 {
		return nil, 0, false
	}
	if columnIndex(rows[0], keyColumn) >= 0 {
		return rows[0], 1, true
	}
	return rows[0], 0, false
}

// headerGetter builds a by-name cell accessor over one row.
func headerGetter(row, header []string) func(name string) string {
	return func(name string) string {
		return cellAt(row, columnIndex(header, name))
	}
}

// --- spec ---

func rowToSpec(row []string) entity.Spec {
	var s entity.Spec
	for i, name := range legacySpecColumns {
		setSpecField(&s, name, cellAt(row, i))
	}
	return s
}

func rowToSpecByHeader(row, header []string) entity.Spec {
	get := headerGetter(row, header)
	var s entity.Spec
	s.MediaID = get("media_id")
	s.MediaName = get("media_name")
	s.DefaultVendor = get("default_vendor")
	s.TrimSize = get("trim_size")
	s.CoverType = get("cover_type")
	// Legacy sheets carried pages/print_color; fold them into the modern
	// fields when those are blank.
	s.CoverPrint = firstNonEmpty(get("cover_print"), get("print_color"))
	s.InnerPages = firstNonEmpty(get("inner_pages"), get("pages"))
	s.InnerPaper = get("inner_paper")
	s.InnerPrint = firstNonEmpty(get("inner_print"), get("print_color"))
	s.CoverPaper = get("cover_paper")
	s.Binding = get("binding")
	s.Finishing = get("finishing")
	s.PackagingDelivery = get("packaging_delivery")
	s.FileRule = get("file_rule")
	s.AdditionalInnerPages = parseAdditionalPages(get("additional_inner_pages"))
	return s
}

func specToRow(s entity.Spec) []string {
	return []string{
		s.MediaID, s.MediaName, s.DefaultVendor, s.TrimSize, s.CoverType,
		s.CoverPaper, s.CoverPrint, s.InnerPages, s.InnerPaper, s.InnerPrint,
		s.Binding, s.Finishing, s.PackagingDelivery, s.FileRule,
		encodeAdditionalPages(s.AdditionalInnerPages),
	}
}

func applySpecPatch(s *entity.Spec, patch map[string]string) {
	for k, v := range patch {
		setSpecField(s, normalizeName(k), v)
	}
}

func setSpecField(s *entity.Spec, name, v string) {
	switch name {
	case "media_id":
		s.MediaID = v
	case "media_name":
		s.MediaName = v
	case "default_vendor":
		s.DefaultVendor = v
	case "trim_size":
		s.TrimSize = v
	case "cover_type":
		s.CoverType = v
	case "cover_paper":
		s.CoverPaper = v
	case "cover_print":
		s.CoverPrint = v
	case "inner_pages", "pages":
		s.InnerPages = v
	case "inner_paper":
		s.InnerPaper = v
	case "inner_print":
		s.InnerPrint = v
	case "print_color":
		// Folded the same way decoding folds the legacy column.
		s.CoverPrint = v
		s.InnerPrint = v
	case "binding":
		s.Binding = v
	case "finishing":
		s.Finishing = v
	case "packaging_delivery":
		s.PackagingDelivery = v
	case "file_rule":
		s.FileRule = v
	case "additional_inner_pages":
		if strings.TrimSpace(v) == "" {
			s.AdditionalInnerPages = nil
		} else if pages := parseAdditionalPages(v); pages != nil {
			s.AdditionalInnerPages = pages
		}
	}
}

func parseAdditionalPages(raw string) []entity.AdditionalInnerPage {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var pages []entity.AdditionalInnerPage
	if err := json.Unmarshal([]byte(raw), &pages); err != nil {
		return nil
	}
	return pages
}

func encodeAdditionalPages(pages []entity.AdditionalInnerPage) string {
	if len(pages) == 0 {
		return ""
	}
	b, err := json.Marshal(pages)
	if err != nil {
		return ""
	}
	return string(b)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// --- job ---

func rowToJob(row []string) entity.Job {
	var j entity.Job
	for i, name := range legacyJobColumns {
		setJobField(&j, name, cellAt(row, i))
	}
	return j
}

func rowToJobByHeader(row, header []string) entity.Job {
	get := headerGetter(row, header)
	var j entity.Job
	for _, name := range jobColumns {
		setJobField(&j, name, get(name))
	}
	return j
}

func jobToRow(j entity.Job) []string {
	return []string{
		j.JobID, j.CreatedAt, j.RequesterName, j.MediaID, j.MediaName,
		j.Vendor, j.VendorID, j.DueDate, j.Qty, j.FileLink, j.ChangesNote,
		j.Status, j.SpecSnapshot, j.LastUpdatedAt, j.LastUpdatedBy,
		j.OrderType, j.TypeSpecSnapshot, j.ProductionCost,
	}
}

func setJobField(j *entity.Job, name, v string) {
	switch name {
	case "job_id":
		j.JobID = v
	case "created_at":
		j.CreatedAt = v
	case "requester_name":
		j.RequesterName = v
	case "media_id":
		j.MediaID = v
	case "media_name":
		j.MediaName = v
	case "vendor":
		j.Vendor = v
	case "vendor_id":
		j.VendorID = v
	case "due_date":
		j.DueDate = v
	case "qty":
		j.Qty = v
	case "file_link":
		j.FileLink = v
	case "changes_note":
		j.ChangesNote = v
	case "status":
		j.Status = v
	case "spec_snapshot":
		j.SpecSnapshot = v
	case "last_updated_at":
		j.LastUpdatedAt = v
	case "last_updated_by":
		j.LastUpdatedBy = v
	case "order_type":
		j.OrderType = v
	case "type_spec_snapshot":
		j.TypeSpecSnapshot = v
	case "production_cost":
		j.ProductionCost = v
	}
}

func applyJobPatch(j *entity.Job, patch map[string]string) {
	for k, v := range patch {
		setJobField(j, normalizeName(k), v)
	}
}

// --- vendor ---

func rowToVendor(row []string) entity.Vendor {
	var v entity.Vendor
	for i, name := range vendorColumns {
		setVendorField(&v, name, cellAt(row, i))
	}
	return v
}

func rowToVendorByHeader(row, header []string) entity.Vendor {
	get := headerGetter(row, header)
	var v entity.Vendor
	for _, name := range vendorColumns {
		setVendorField(&v, name, get(name))
	}
	if v.PINHashB64 == "" {
		v.PINHashB64 = get("pin_hash")
	}
	return v
}

func setVendorField(v *entity.Vendor, name, val string) {
	switch name {
	case "vendor_id":
		v.VendorID = val
	case "vendor_name":
		v.VendorName = val
	case "pin":
		v.PIN = val
	case "pin_hash_b64", "pin_hash":
		v.PINHashB64 = val
	case "is_active":
		v.IsActive = val
	case "created_at":
		v.CreatedAt = val
	case "updated_at":
		v.UpdatedAt = val
	}
}

func vendorToRow(v entity.Vendor) []string {
	return []string{
		v.VendorID, v.VendorName, v.PIN, v.PINHashB64, v.IsActive,
		v.CreatedAt, v.UpdatedAt,
	}
}

// applyVendorPatch accepts the editable subset only; identity and audit
// stamps are owned by the store.
func applyVendorPatch(v *entity.Vendor, patch map[string]string) {
	for k, val := range patch {
		switch normalizeName(k) {
		case "vendor_name", "pin", "pin_hash_b64", "pin_hash", "is_active":
			setVendorField(v, normalizeName(k), val)
		}
	}
}

// --- vendor pricing ---

func rowToPricing(row []string) entity.VendorPricing {
	var p entity.VendorPricing
	for i, name := range pricingColumns {
		setPricingField(&p, name, cellAt(row, i))
	}
	return p
}

func rowToPricingByHeader(row, header []string) entity.VendorPricing {
	get := headerGetter(row, header)
	var p entity.VendorPricing
	for _, name := range pricingColumns {
		setPricingField(&p, name, get(name))
	}
	return p
}

func setPricingField(p *entity.VendorPricing, name, val string) {
	switch name {
	case "vendor_id":
		p.VendorID = val
	case "item_type":
		p.ItemType = val
	case "item_name":
		p.ItemName = val
	case "unit_price":
		p.UnitPrice = val
	case "unit":
		p.Unit = val
	case "notes":
		p.Notes = val
	}
}

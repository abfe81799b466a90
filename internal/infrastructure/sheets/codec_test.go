package sheets

import (
	"testing"

	"github.com/yourusername/print-order-board/internal/domain/entity"
)

func TestColumnIndexNormalizesHeaders(t *testing.T) {
	header := []string{"\uFEFFMedia_ID", " media name ", "Default Vendor"}
	if got := columnIndex(header, "media_name"); got != 1 {
		t.Fatalf("media_name index = %d, want 1", got)
	}
	if got := columnIndex(header, "default_vendor"); got != 2 {
		t.Fatalf("default_vendor index = %d, want 2", got)
	}
	if got := columnIndex(header, "missing"); got != -1 {
		t.Fatalf("missing index = %d, want -1", got)
	}
}

func TestNormalizeCellStripsBOM(t *testing.T) {
	if got := normalizeCell("\uFEFF mg-001 "); got != "mg-001" {
		t.Fatalf("got %q", got)
	}
}

func TestSpecRoundTripByHeader(t *testing.T) {
	spec := entity.Spec{
		MediaID:           "mg-001",
		MediaName:         "월간지",
		DefaultVendor:     "한빛인쇄",
		TrimSize:          "210x297",
		CoverType:         "아트지",
		CoverPaper:        "아트지 250g",
		CoverPrint:        "양면 4도",
		InnerPages:        "32p",
		InnerPaper:        "모조지 100g",
		InnerPrint:        "양면 1도",
		Binding:           "무선제본",
		Finishing:         "유광코팅",
		PackagingDelivery: "묶음포장",
		FileRule:          "PDF/X-1a",
		AdditionalInnerPages: []entity.AdditionalInnerPage{
			{Type: "화보", Pages: "8", Paper: "아트지 150g", Print: "양면 4도"},
		},
	}

	row := specToRow(spec)
	got := rowToSpecByHeader(row, specColumns)

	if got.MediaID != spec.MediaID || got.Finishing != spec.Finishing {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if len(got.AdditionalInnerPages) != 1 || got.AdditionalInnerPages[0].Pages != "8" {
		t.Fatalf("additional pages = %+v", got.AdditionalInnerPages)
	}
}

func TestSpecByHeaderLegacyFallbacks(t *testing.T) {
	header := []string{"media_id", "media_name", "pages", "print_color"}
	row := []string{"mg-002", "사보", "48p", "4도"}
	got := rowToSpecByHeader(row, header)

	if got.InnerPages != "48p" {
		t.Fatalf("inner_pages = %q, want pages fallback", got.InnerPages)
	}
	if got.CoverPrint != "4도" || got.InnerPrint != "4도" {
		t.Fatalf("print_color fold: cover=%q inner=%q", got.CoverPrint, got.InnerPrint)
	}
}

func TestSpecPositionalDecodeShortRow(t *testing.T) {
	got := rowToSpec([]string{"mg-003", "브로슈어"})
	if got.MediaID != "mg-003" || got.MediaName != "브로슈어" {
		t.Fatalf("got %+v", got)
	}
	if got.Binding != "" || got.AdditionalInnerPages != nil {
		t.Fatalf("short row should leave tail fields empty: %+v", got)
	}
}

func TestApplySpecPatchPrintColorFoldsBoth(t *testing.T) {
	spec := entity.Spec{CoverPrint: "양면 4도", InnerPrint: "양면 1도"}
	applySpecPatch(&spec, map[string]string{"Print_Color": "단면 1도"})
	if spec.CoverPrint != "단면 1도" || spec.InnerPrint != "단면 1도" {
		t.Fatalf("got cover=%q inner=%q", spec.CoverPrint, spec.InnerPrint)
	}
}

func TestApplySpecPatchAdditionalPages(t *testing.T) {
	spec := entity.Spec{
		AdditionalInnerPages: []entity.AdditionalInnerPage{{Type: "화보", Pages: "8"}},
	}

	// Malformed JSON leaves the current value alone.
	applySpecPatch(&spec, map[string]string{"additional_inner_pages": "{broken"})
	if len(spec.AdditionalInnerPages) != 1 {
		t.Fatalf("malformed patch should be ignored, got %+v", spec.AdditionalInnerPages)
	}

	// Blank clears.
	applySpecPatch(&spec, map[string]string{"additional_inner_pages": ""})
	if spec.AdditionalInnerPages != nil {
		t.Fatalf("blank patch should clear, got %+v", spec.AdditionalInnerPages)
	}
}

func TestJobRoundTripByHeader(t *testing.T) {
	job := entity.Job{
		JobID:          "20260115-093000-0042",
		CreatedAt:      "2026-01-15T09:30:00+09:00",
		RequesterName:  "김편집",
		MediaID:        "mg-001",
		MediaName:      "월간지",
		Vendor:         "한빛인쇄",
		VendorID:       "v-1",
		DueDate:        "2026-01-20",
		Qty:            "500",
		Status:         "접수",
		OrderType:      "book",
		ProductionCost: "1408000",
	}
	got := rowToJobByHeader(jobToRow(job), jobColumns)
	if got != job {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, job)
	}
}

func TestJobPositionalDecodeUsesLegacyOrder(t *testing.T) {
	// A 16-column row from before vendor_id/production_cost existed.
	row := []string{
		"20250101-120000-0001", "2025-01-01T12:00:00+09:00", "박기자",
		"mg-001", "월간지", "한빛인쇄", "2025-01-10", "300", "", "",
		"완료", "{}", "2025-01-05T10:00:00+09:00", "박기자", "book", "",
	}
	got := rowToJob(row)
	if got.Vendor != "한빛인쇄" {
		t.Fatalf("vendor = %q", got.Vendor)
	}
	if got.DueDate != "2025-01-10" || got.Status != "완료" {
		t.Fatalf("legacy positions shifted: %+v", got)
	}
	if got.VendorID != "" || got.ProductionCost != "" {
		t.Fatalf("legacy row has no modern columns: %+v", got)
	}
}

func TestVendorByHeaderPinHashFallback(t *testing.T) {
	header := []string{"vendor_id", "vendor_name", "pin", "pin_hash", "is_active"}
	row := []string{"v-1", "한빛인쇄", "123456", "aGFzaA==", "TRUE"}
	got := rowToVendorByHeader(row, header)
	if got.PINHashB64 != "aGFzaA==" {
		t.Fatalf("pin_hash fallback not applied: %+v", got)
	}
}

func TestApplyVendorPatchWhitelist(t *testing.T) {
	v := entity.Vendor{VendorID: "v-1", VendorName: "한빛인쇄", CreatedAt: "then"}
	applyVendorPatch(&v, map[string]string{
		"vendor_name": "한빛프린팅",
		"vendor_id":   "v-999",
		"created_at":  "now",
	})
	if v.VendorName != "한빛프린팅" {
		t.Fatalf("vendor_name not patched: %+v", v)
	}
	if v.VendorID != "v-1" || v.CreatedAt != "then" {
		t.Fatalf("identity fields must not be patchable: %+v", v)
	}
}

func TestTableLayoutDetection(t *testing.T) {
	withHeader := [][]string{{"media_id", "media_name"}, {"mg-001", "월간지"}}
	_, start, byHeader := tableLayout(withHeader, "media_id")
	if !byHeader || start != 1 {
		t.Fatalf("header table: byHeader=%v start=%d", byHeader, start)
	}

	headerless := [][]string{{"mg-001", "월간지"}}
	_, start, byHeader = tableLayout(headerless, "media_id")
	if byHeader || start != 0 {
		t.Fatalf("headerless table: byHeader=%v start=%d", byHeader, start)
	}
}

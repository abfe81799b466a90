package usecase

import (
	"context"
	"testing"

	"github.com/yourusername/print-order-board/internal/domain/entity"
	"github.com/yourusername/print-order-board/internal/pkg/logger"
)

type stubPriceSource struct {
	prices map[string]int // "vendorID/itemType/itemName" -> price
	err    error
}

func (s *stubPriceSource) Lookup(_ context.Context, vendorID, itemType, itemName string) (int, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	price, ok := s.prices[vendorID+"/"+itemType+"/"+itemName]
	return price, ok, nil
}

func defaultEngine() *PricingEngine {
	return NewPricingEngine(nil, logger.Nop())
}

func TestComputeSheetCostPlain(t *testing.T) {
	cost := defaultEngine().ComputeSheetCost(context.Background(), entity.SheetSpec{
		KindsCount:    "2",
		SheetsPerKind: "3",
		PrintSide:     "양면",
		Finishing:     entity.StringList{"없음"},
	}, "")
	if cost.Subtotal != 1800 || cost.VAT != 180 || cost.Total != 1980 {
		t.Fatalf("got %+v", cost)
	}
}

func TestComputeSheetCostCoatingDoubleSided(t *testing.T) {
	cost := defaultEngine().ComputeSheetCost(context.Background(), entity.SheetSpec{
		KindsCount:    "1",
		SheetsPerKind: "10",
		PrintSide:     "양면",
		Finishing:     entity.StringList{"유광코팅"},
	}, "")
	// 10 sheets x 300 + 20 coated faces x 500.
	if cost.Subtotal != 13000 || cost.VAT != 1300 || cost.Total != 14300 {
		t.Fatalf("got %+v", cost)
	}
}

func TestComputeSheetCostEpoxyFlatPerKind(t *testing.T) {
	cost := defaultEngine().ComputeSheetCost(context.Background(), entity.SheetSpec{
		KindsCount:    "2",
		SheetsPerKind: "50",
		PrintSide:     "단면",
		Finishing:     entity.StringList{"에폭시"},
	}, "")
	// 100 sheets x 300 + 2 designs x 120000.
	if cost.Subtotal != 270000 {
		t.Fatalf("subtotal = %d", cost.Subtotal)
	}
}

func TestComputeSheetCostNoneKeywordPrefix(t *testing.T) {
	cost := defaultEngine().ComputeSheetCost(context.Background(), entity.SheetSpec{
		KindsCount:    "1",
		SheetsPerKind: "1",
		Finishing:     entity.StringList{"없음 (기본)"},
	}, "")
	if cost.Subtotal != 300 {
		t.Fatalf("none-prefixed finishing priced: %+v", cost)
	}
}

func TestComputeBookCostPerfectBind(t *testing.T) {
	cost := defaultEngine().ComputeBookCost(context.Background(), entity.Spec{
		CoverPrint: "양면 4도",
		InnerPages: "32p",
		Binding:    "무선제본",
		Finishing:  "없음",
	}, 100, "")
	// cover 4x300x100 + inner 32x300x100 + binding 2000x100.
	if cost.Subtotal != 1280000 || cost.VAT != 128000 || cost.Total != 1408000 {
		t.Fatalf("got %+v", cost)
	}
}

func TestComputeBookCostSingleSidedCoverAndSaddle(t *testing.T) {
	cost := defaultEngine().ComputeBookCost(context.Background(), entity.Spec{
		CoverPrint: "단면 1도",
		InnerPages: "16",
		Binding:    "중철제본",
	}, 10, "")
	// cover 2x300x10 + inner 16x300x10 + binding 1500x10.
	if cost.Subtotal != 6000+48000+15000 {
		t.Fatalf("subtotal = %d", cost.Subtotal)
	}
}

func TestComputeBookCostAdditionalInnerPages(t *testing.T) {
	cost := defaultEngine().ComputeBookCost(context.Background(), entity.Spec{
		CoverPrint: "양면 4도",
		InnerPages: "32p",
		AdditionalInnerPages: []entity.AdditionalInnerPage{
			{Type: "화보", Pages: "8p"},
		},
	}, 1, "")
	// cover 1200 + inner 9600 + additional 2400.
	if cost.Subtotal != 13200 {
		t.Fatalf("subtotal = %d", cost.Subtotal)
	}
}

func TestVATFloors(t *testing.T) {
	if got := costFromSubtotal(1999); got.VAT != 199 || got.Total != 2198 {
		t.Fatalf("got %+v", got)
	}
	if got := costFromSubtotal(0); got.VAT != 0 || got.Total != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestVendorOverrideAffectsOnlyNamedItem(t *testing.T) {
	src := &stubPriceSource{prices: map[string]int{
		"v-1/page/표지": 250,
	}}
	engine := NewPricingEngine(src, logger.Nop())

	cost := engine.ComputeBookCost(context.Background(), entity.Spec{
		CoverPrint: "양면 4도",
		InnerPages: "32p",
		Binding:    "무선제본",
	}, 100, "v-1")
	// cover 4x250x100 + inner at default 32x300x100 + binding default 2000x100.
	if cost.Subtotal != 100000+960000+200000 {
		t.Fatalf("subtotal = %d", cost.Subtotal)
	}
}

func TestVendorLookupErrorFallsBackToDefault(t *testing.T) {
	src := &stubPriceSource{err: context.DeadlineExceeded}
	engine := NewPricingEngine(src, logger.Nop())

	cost := engine.ComputeSheetCost(context.Background(), entity.SheetSpec{
		KindsCount:    "1",
		SheetsPerKind: "1",
	}, "v-1")
	if cost.Subtotal != 300 {
		t.Fatalf("subtotal = %d, want default price", cost.Subtotal)
	}
}

func TestComputeJobCostMalformedSnapshot(t *testing.T) {
	engine := defaultEngine()
	ctx := context.Background()

	if got := engine.ComputeJobCost(ctx, entity.Job{OrderType: "book", SpecSnapshot: "{broken"}); got != nil {
		t.Fatalf("got %+v", got)
	}
	if got := engine.ComputeJobCost(ctx, entity.Job{OrderType: "sheet", TypeSpecSnapshot: "not json"}); got != nil {
		t.Fatalf("got %+v", got)
	}
	if got := engine.ComputeJobCost(ctx, entity.Job{OrderType: "mystery"}); got != nil {
		t.Fatalf("got %+v", got)
	}
	if got := engine.ComputeJobCost(ctx, entity.Job{OrderType: "book"}); got != nil {
		t.Fatalf("empty snapshot should not price: %+v", got)
	}
}

func TestComputeJobCostSheetSnapshotNumbers(t *testing.T) {
	// The UI wrote counts as JSON numbers; FlexString absorbs that.
	job := entity.Job{
		OrderType:        "sheet",
		TypeSpecSnapshot: `{"kinds_count":2,"sheets_per_kind":3,"finishing":"없음"}`,
	}
	cost := defaultEngine().ComputeJobCost(context.Background(), job)
	if cost == nil || cost.Subtotal != 1800 {
		t.Fatalf("got %+v", cost)
	}
}

func TestCostFromStored(t *testing.T) {
	got := CostFromStored("1408000")
	if got == nil || got.Subtotal != 1280000 || got.VAT != 128000 {
		t.Fatalf("got %+v", got)
	}
	if CostFromStored("") != nil || CostFromStored("abc") != nil {
		t.Fatal("non-numeric stored cost should yield nil")
	}
}

func TestFirstNumber(t *testing.T) {
	cases := map[string]int{
		"32p":    32,
		"약 48쪽": 48,
		"500":    500,
		"":       0,
		"없음":     0,
	}
	for in, want := range cases {
		if got := firstNumber(in); got != want {
			t.Fatalf("firstNumber(%q) = %d, want %d", in, got, want)
		}
	}
}

package usecase

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/yourusername/print-order-board/internal/domain/constants"
	"github.com/yourusername/print-order-board/internal/domain/entity"
	"github.com/yourusername/print-order-board/internal/pkg/logger"
)

// PriceSource answers vendor unit-price override lookups. ok=false means
// no override exists and the engine default applies.
type PriceSource interface {
	Lookup(ctx context.Context, vendorID, itemType, itemName string) (int, bool, error)
}

// PricingEngine derives a production cost from a denormalized order
// specification. All arithmetic is integer KRW; VAT is floor(10%) of the
// subtotal. The engine is deterministic: same inputs, same cost.
type PricingEngine struct {
	prices PriceSource // may be nil: defaults only
	log    *logger.Logger
}

func NewPricingEngine(prices PriceSource, log *logger.Logger) *PricingEngine {
	return &PricingEngine{prices: prices, log: log}
}

// ComputeJobCost prices a stored job from its snapshot. A malformed
// snapshot or unrecognized order type means no cost applies (nil), never
// an error: pricing must not take down a job read.
func (e *PricingEngine) ComputeJobCost(ctx context.Context, job entity.Job) *entity.Cost {
	switch job.OrderType {
	case constants.OrderTypeSheet:
		if strings.TrimSpace(job.TypeSpecSnapshot) == "" {
			return nil
		}
		var ts entity.SheetSpec
		if err := json.Unmarshal([]byte(job.TypeSpecSnapshot), &ts); err != nil {
			e.log.Warn("type_spec_snapshot unparsable", "job_id", job.JobID)
			return nil
		}
		return e.ComputeSheetCost(ctx, ts, job.VendorID)
	case constants.OrderTypeBook:
		if strings.TrimSpace(job.SpecSnapshot) == "" {
			return nil
		}
		var spec entity.Spec
		if err := json.Unmarshal([]byte(job.SpecSnapshot), &spec); err != nil {
			e.log.Warn("spec_snapshot unparsable", "job_id", job.JobID)
			return nil
		}
		qty := positiveInt(job.Qty, 1)
		return e.ComputeBookCost(ctx, spec, qty, job.VendorID)
	default:
		return nil
	}
}

// ComputeBookCost prices a book order from its spec snapshot and quantity.
func (e *PricingEngine) ComputeBookCost(ctx context.Context, spec entity.Spec, qty int, vendorID string) *entity.Cost {
	if qty < 1 {
		qty = 1
	}

	// Cover: 2 printed pages single-sided, 4 double-sided.
	coverPages := 4
	if strings.Contains(spec.CoverPrint, "단면") {
		coverPages = 2
	}
	coverCost := coverPages * e.unitPrice(ctx, vendorID, constants.ItemTypePage, constants.ItemCover, constants.DefaultPagePrice) * qty

	innerPrice := e.unitPrice(ctx, vendorID, constants.ItemTypePage, constants.ItemInner, constants.DefaultPagePrice)
	innerCost := firstNumber(spec.InnerPages) * innerPrice * qty

	additionalCost := 0
	for _, p := range spec.AdditionalInnerPages {
		additionalCost += firstNumber(p.Pages) * innerPrice * qty
	}

	bindingCost := 0
	if strings.Contains(spec.Binding, constants.ItemPerfectBind) {
		bindingCost = e.unitPrice(ctx, vendorID, constants.ItemTypeBinding, constants.ItemPerfectBind, constants.DefaultPerfectBindPrice) * qty
	} else if strings.Contains(spec.Binding, constants.ItemSaddleBind) {
		bindingCost = e.unitPrice(ctx, vendorID, constants.ItemTypeBinding, constants.ItemSaddleBind, constants.DefaultSaddleStitchPrice) * qty
	}

	finishingCost := 0
	finishing := strings.ToLower(strings.TrimSpace(spec.Finishing))
	if !noFinishing(finishing) {
		switch {
		case strings.Contains(finishing, constants.ItemEpoxy):
			finishingCost = e.unitPrice(ctx, vendorID, constants.ItemTypeFinishing, constants.ItemEpoxy, constants.DefaultEpoxyPrice)
		case mentionsCoating(finishing):
			// Coating covers the outside of the cover: 2 faces, or 4
			// when the finishing itself says double-sided.
			pages := 2
			if strings.Contains(finishing, "양면") {
				pages = 4
			}
			finishingCost = pages * e.unitPrice(ctx, vendorID, constants.ItemTypeFinishing, constants.ItemCoating, constants.DefaultCoatingPrice) * qty
		}
	}

	subtotal := coverCost + innerCost + additionalCost + bindingCost + finishingCost
	return costFromSubtotal(subtotal)
}

// ComputeSheetCost prices a loose-sheet order from its ad-hoc spec.
func (e *PricingEngine) ComputeSheetCost(ctx context.Context, ts entity.SheetSpec, vendorID string) *entity.Cost {
	kinds := positiveInt(ts.KindsCount.String(), 1)
	perKind := positiveInt(ts.SheetsPerKind.String(), 1)
	totalSheets := kinds * perKind

	printCost := totalSheets * e.unitPrice(ctx, vendorID, constants.ItemTypePage, constants.ItemLooseSheet, constants.DefaultPagePrice)

	finishingCost := 0
	finishing := strings.ToLower(strings.TrimSpace(ts.Finishing.Joined()))
	if !noFinishing(finishing) {
		switch {
		case strings.Contains(finishing, constants.ItemEpoxy):
			// Flat per distinct design, not per sheet.
			finishingCost = e.unitPrice(ctx, vendorID, constants.ItemTypeFinishing, constants.ItemEpoxy, constants.DefaultEpoxyPrice) * kinds
		case mentionsCoating(finishing):
			effectiveSheets := totalSheets
			if doubleSided(ts.PrintSide) {
				// Both faces get coated.
				effectiveSheets = totalSheets * 2
			}
			finishingCost = effectiveSheets * e.unitPrice(ctx, vendorID, constants.ItemTypeFinishing, constants.ItemCoating, constants.DefaultCoatingPrice)
		}
	}

	// Cutting is modeled but currently free.
	cuttingCost := 0

	subtotal := printCost + finishingCost + cuttingCost
	return costFromSubtotal(subtotal)
}

func (e *PricingEngine) unitPrice(ctx context.Context, vendorID, itemType, itemName string, def int) int {
	if e.prices == nil || strings.TrimSpace(vendorID) == "" {
		return def
	}
	price, ok, err := e.prices.Lookup(ctx, vendorID, itemType, itemName)
	if err != nil {
		e.log.Warn("vendor price lookup failed", "vendor_id", vendorID, "item", itemName, "err", err)
		return def
	}
	if !ok {
		return def
	}
	return price
}

// CostFromStored reconstructs subtotal/VAT from a stored total, the
// inverse of costFromSubtotal up to rounding.
func CostFromStored(raw string) *entity.Cost {
	total, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	subtotal := int(math.Round(float64(total) / 1.1))
	return &entity.Cost{Subtotal: subtotal, VAT: total - subtotal, Total: total}
}

func costFromSubtotal(subtotal int) *entity.Cost {
	vat := subtotal / 10 // floor of 10%
	return &entity.Cost{Subtotal: subtotal, VAT: vat, Total: subtotal + vat}
}

// noFinishing matches an empty label or one starting with the
// none-keyword ("없음 (기본)" counts).
func noFinishing(finishing string) bool {
	return finishing == "" || strings.HasPrefix(finishing, "없음")
}

func mentionsCoating(finishing string) bool {
	return strings.Contains(finishing, "코팅") ||
		strings.Contains(finishing, "라미네이팅") ||
		strings.Contains(finishing, "라미테이팅")
}

func doubleSided(printSide string) bool {
	// Blank defaults to double-sided, matching historical orders.
	return printSide == "" || strings.Contains(printSide, "양면")
}

// firstNumber extracts the first run of digits ("32p" -> 32), 0 if none.
func firstNumber(s string) int {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(s[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(s[start:])
		return n
	}
	return 0
}

// positiveInt parses the leading number of s, clamped to at least min.
func positiveInt(s string, min int) int {
	n := firstNumber(s)
	if n < min {
		return min
	}
	return n
}

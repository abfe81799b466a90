package sheets

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/yourusername/print-order-board/internal/domain/constants"
	"github.com/yourusername/print-order-board/internal/domain/entity"
	"github.com/yourusername/print-order-board/internal/pkg/logger"
)

// VendorPricingStore reads the vendor_pricing overrides table. The table
// is maintained by hand in the spreadsheet; this side only reads.
type VendorPricingStore struct {
	client RangeClient
	log    *logger.Logger
}

func NewVendorPricingStore(client RangeClient, log *logger.Logger) *VendorPricingStore {
	return &VendorPricingStore{client: client, log: log}
}

func (s *VendorPricingStore) ListByVendor(ctx context.Context, vendorID string) ([]entity.VendorPricing, error) {
	all, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	needle := normalizeCell(vendorID)
	list := make([]entity.VendorPricing, 0, len(all))
	for _, p := range all {
		if normalizeCell(p.VendorID) == needle {
			list = append(list, p)
		}
	}
	return list, nil
}

// Lookup returns the vendor's unit price for (item_type, item_name), or
// ok=false when no override exists and the engine default applies. Rows
// whose price cell does not parse are skipped with a warning.
func (s *VendorPricingStore) Lookup(ctx context.Context, vendorID, itemType, itemName string) (int, bool, error) {
	all, err := s.listAll(ctx)
	if err != nil {
		return 0, false, err
	}
	vNeedle := normalizeCell(vendorID)
	tNeedle := normalizeName(itemType)
	nNeedle := normalizeCell(itemName)
	for _, p := range all {
		if normalizeCell(p.VendorID) != vNeedle ||
			normalizeName(p.ItemType) != tNeedle ||
			normalizeCell(p.ItemName) != nNeedle {
			continue
		}
		price, ok := parsePrice(p.UnitPrice)
		if !ok {
			s.log.Warn("unparsable unit_price", "vendor_id", vendorID, "item_name", p.ItemName, "raw", p.UnitPrice)
			continue
		}
		return price, true, nil
	}
	return 0, false, nil
}

func (s *VendorPricingStore) listAll(ctx context.Context) ([]entity.VendorPricing, error) {
	rows, err := s.client.FetchRange(ctx, constants.VendorPricingSheet, constants.VendorPricingColSpan)
	if err != nil {
		return nil, err
	}
	header, dataStart, byHeader := tableLayout(rows, "vendor_id")
	list := make([]entity.VendorPricing, 0, len(rows))
	for i := dataStart; i < len(rows); i++ {
		var p entity.VendorPricing
		if byHeader {
			p = rowToPricingByHeader(rows[i], header)
		} else {
			p = rowToPricing(rows[i])
		}
		if normalizeCell(p.VendorID) == "" {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

// parsePrice accepts plain integers and the decimal/thousand-separator
// artifacts spreadsheets produce ("1,500", "300.0").
func parsePrice(raw string) (int, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(f)), true
}

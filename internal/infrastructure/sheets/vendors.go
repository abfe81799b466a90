package sheets

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/print-order-board/internal/domain/constants"
	"github.com/yourusername/print-order-board/internal/domain/entity"
	"github.com/yourusername/print-order-board/internal/pkg/logger"
)

// VendorStore is the vendors facade. The plaintext PIN is stored next to
// its bcrypt hash for the admin recovery screen; the hash is what machine
// verification uses.
type VendorStore struct {
	client RangeClient
	log    *logger.Logger

	now   func() time.Time
	newID func() string
}

func NewVendorStore(client RangeClient, log *logger.Logger) *VendorStore {
	return &VendorStore{
		client: client,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List returns active vendors. A blank is_active cell means active.
func (s *VendorStore) List(ctx context.Context) ([]entity.Vendor, error) {
	all, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]entity.Vendor, 0, len(all))
	for _, v := range all {
		if vendorActive(v) {
			list = append(list, v)
		}
	}
	return list, nil
}

// GetByID returns the vendor regardless of active state; nil when absent.
func (s *VendorStore) GetByID(ctx context.Context, vendorID string) (*entity.Vendor, error) {
	all, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	needle := normalizeCell(vendorID)
	for i := range all {
		if normalizeCell(all[i].VendorID) == needle {
			return &all[i], nil
		}
	}
	return nil, nil
}

// Create generates the vendor_id, hashes the PIN and appends the row.
func (s *VendorStore) Create(ctx context.Context, vendorName, pin string) (*entity.Vendor, error) {
	vendorName = strings.TrimSpace(vendorName)
	if vendorName == "" {
		return nil, fmt.Errorf("vendor_name required")
	}
	hashB64, err := hashPIN(pin)
	if err != nil {
		return nil, err
	}

	now := timestamp(s.now())
	vendor := entity.Vendor{
		VendorID:   s.newID(),
		VendorName: vendorName,
		PIN:        strings.TrimSpace(pin),
		PINHashB64: hashB64,
		IsActive:   "TRUE",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.client.AppendRow(ctx, constants.VendorsSheet, constants.VendorColSpan, vendorToRow(vendor)); err != nil {
		return nil, err
	}
	s.log.Info("vendor created", "vendor_id", vendor.VendorID, "vendor_name", vendorName)
	return &vendor, nil
}

// Update re-reads the live row, merges the patch and re-stamps
// updated_at. A "pin" key re-hashes the credential.
func (s *VendorStore) Update(ctx context.Context, vendorID string, patch map[string]string) (bool, error) {
	if pin, ok := patchValue(patch, "pin"); ok {
		hashB64, err := hashPIN(pin)
		if err != nil {
			return false, err
		}
		patch = clonePatchWithout(patch, "pin")
		patch["pin"] = strings.TrimSpace(pin)
		patch["pin_hash_b64"] = hashB64
	}

	rows, err := s.client.FetchRange(ctx, constants.VendorsSheet, constants.VendorColSpan)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}

	header, dataStart, byHeader := tableLayout(rows, "vendor_id")
	keyCol := 0
	if byHeader {
		keyCol = columnIndex(header, "vendor_id")
	}

	needle := normalizeCell(vendorID)
	for i := dataStart; i < len(rows); i++ {
		if normalizeCell(cellAt(rows[i], keyCol)) != needle {
			continue
		}
		var vendor entity.Vendor
		if byHeader {
			vendor = rowToVendorByHeader(rows[i], header)
		} else {
			vendor = rowToVendor(rows[i])
		}
		applyVendorPatch(&vendor, patch)
		vendor.UpdatedAt = timestamp(s.now())

		if err := s.client.UpdateRow(ctx, constants.VendorsSheet, i+1, constants.VendorColSpan, vendorToRow(vendor)); err != nil {
			return false, err
		}
		s.log.Info("vendor updated", "vendor_id", vendorID)
		return true, nil
	}
	return false, nil
}

// Delete removes the row itself rather than blanking it. Later rows shift
// up, which is safe because every operation locates rows by key scan, not
// by remembered index.
func (s *VendorStore) Delete(ctx context.Context, vendorID string) (bool, error) {
	rows, err := s.client.FetchRange(ctx, constants.VendorsSheet, constants.VendorColSpan)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}

	header, dataStart, byHeader := tableLayout(rows, "vendor_id")
	keyCol := 0
	if byHeader {
		keyCol = columnIndex(header, "vendor_id")
	}

	needle := normalizeCell(vendorID)
	for i := dataStart; i < len(rows); i++ {
		if normalizeCell(cellAt(rows[i], keyCol)) != needle {
			continue
		}
		if err := s.client.DeleteRow(ctx, constants.VendorsSheet, i+1); err != nil {
			return false, err
		}
		s.log.Info("vendor deleted", "vendor_id", vendorID)
		return true, nil
	}
	return false, nil
}

func (s *VendorStore) listAll(ctx context.Context) ([]entity.Vendor, error) {
	rows, err := s.client.FetchRange(ctx, constants.VendorsSheet, constants.VendorColSpan)
	if err != nil {
		return nil, err
	}
	header, dataStart, byHeader := tableLayout(rows, "vendor_id")
	list := make([]entity.Vendor, 0, len(rows))
	for i := dataStart; i < len(rows); i++ {
		var v entity.Vendor
		if byHeader {
			v = rowToVendorByHeader(rows[i], header)
		} else {
			v = rowToVendor(rows[i])
		}
		if normalizeCell(v.VendorID) == "" {
			continue
		}
		list = append(list, v)
	}
	return list, nil
}

func vendorActive(v entity.Vendor) bool {
	switch strings.ToUpper(strings.TrimSpace(v.IsActive)) {
	case "", "TRUE":
		return true
	default:
		return false
	}
}

// hashPIN validates the fixed-length digit PIN and returns its bcrypt
// hash, base64-wrapped the way the sheet stores it.
func hashPIN(pin string) (string, error) {
	pin = strings.TrimSpace(pin)
	if len(pin) != constants.PINLength || !allDigits(pin) {
		return "", fmt.Errorf("pin must be %d digits", constants.PINLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), constants.PINHashCost)
	if err != nil {
		return "", fmt.Errorf("pin hash: %w", err)
	}
	return base64.StdEncoding.EncodeToString(hash), nil
}

// VerifyPIN checks a candidate PIN against the stored base64-wrapped
// bcrypt hash.
func VerifyPIN(v entity.Vendor, pin string) bool {
	hash, err := base64.StdEncoding.DecodeString(strings.TrimSpace(v.PINHashB64))
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(strings.TrimSpace(pin))) == nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func patchValue(patch map[string]string, name string) (string, bool) {
	for k, v := range patch {
		if normalizeName(k) == name {
			return v, true
		}
	}
	return "", false
}

func clonePatchWithout(patch map[string]string, name string) map[string]string {
	out := make(map[string]string, len(patch)+1)
	for k, v := range patch {
		if normalizeName(k) != name {
			out[k] = v
		}
	}
	return out
}

package sheets

import (
	"context"

	"github.com/yourusername/print-order-board/internal/domain/constants"
	"github.com/yourusername/print-order-board/internal/domain/entity"
	"github.com/yourusername/print-order-board/internal/pkg/logger"
)

// SpecStore is the spec_master facade. Reads are served from a single
// shared cache slot; every write invalidates it before returning, so a
// read right after a write in the same process is never stale.
type SpecStore struct {
	client RangeClient
	cache  *specCache
	log    *logger.Logger
}

func NewSpecStore(client RangeClient, log *logger.Logger) *SpecStore {
	return &SpecStore{
		client: client,
		cache:  newSpecCache(constants.SpecCacheTTL),
		log:    log,
	}
}

func (s *SpecStore) List(ctx context.Context) ([]entity.Spec, error) {
	if cached, ok := s.cache.get(); ok {
		return cached, nil
	}

	rows, err := s.client.FetchRange(ctx, constants.SpecSheet, constants.SpecColSpan)
	if err != nil {
		return nil, err
	}

	list := decodeSpecs(rows)
	s.cache.set(list)
	return list, nil
}

func (s *SpecStore) GetByMediaID(ctx context.Context, mediaID string) (*entity.Spec, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := normalizeCell(mediaID)
	for i := range list {
		if normalizeCell(list[i].MediaID) == needle {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (s *SpecStore) Append(ctx context.Context, spec entity.Spec) error {
	if err := s.client.AppendRow(ctx, constants.SpecSheet, constants.SpecColSpan, specToRow(spec)); err != nil {
		return err
	}
	s.cache.invalidate()
	s.log.Info("spec appended", "media_id", spec.MediaID)
	return nil
}

// UpdatePartial re-reads the live table (bypassing the cache so a stale
// snapshot is never merged), overlays the patch onto the decoded row and
// writes the full row back in current column order.
func (s *SpecStore) UpdatePartial(ctx context.Context, mediaID string, patch map[string]string) (bool, error) {
	rows, err := s.client.FetchRange(ctx, constants.SpecSheet, constants.SpecColSpan)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}

	header, dataStart, byHeader := tableLayout(rows, "media_id")
	keyCol := 0
	if byHeader {
		keyCol = columnIndex(header, "media_id")
	}

	needle := normalizeCell(mediaID)
	for i := dataStart; i < len(rows); i++ {
		if normalizeCell(cellAt(rows[i], keyCol)) != needle {
			continue
		}
		var current entity.Spec
		if byHeader {
			current = rowToSpecByHeader(rows[i], header)
		} else {
			current = rowToSpec(rows[i])
		}
		applySpecPatch(&current, patch)

		if err := s.client.UpdateRow(ctx, constants.SpecSheet, i+1, constants.SpecColSpan, specToRow(current)); err != nil {
			return false, err
		}
		s.cache.invalidate()
		s.log.Info("spec updated", "media_id", mediaID)
		return true, nil
	}
	return false, nil
}

func decodeSpecs(rows [][]string) []entity.Spec {
	header, dataStart, byHeader := tableLayout(rows, "media_id")
	list := make([]entity.Spec, 0, len(rows))
	for i := dataStart; i < len(rows); i++ {
		var spec entity.Spec
		if byHeader {
			spec = rowToSpecByHeader(rows[i], header)
		} else {
			spec = rowToSpec(rows[i])
		}
		// Blank keys are formatting leftovers, not records.
		if normalizeCell(spec.MediaID) == "" {
			continue
		}
		list = append(list, spec)
	}
	return list
}

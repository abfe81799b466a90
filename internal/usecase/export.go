package usecase

import (
	"bytes"
	"context"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/print-order-board/internal/domain/entity"
)

// BuildJobsXLSX renders the filtered job list as a spreadsheet for the
// monthly settlement handoff. Costs come from JobCost so manual
// adjustments show up the same way the board displays them.
func (s *OrderService) BuildJobsXLSX(ctx context.Context, filter entity.JobFilter) ([]byte, error) {
	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range jobExportHeaders() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, job := range jobs {
		cost := s.JobCost(ctx, job)
		rowIdx := i + 2
		for c, v := range jobExportRowValues(job, cost) {
			cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func jobExportHeaders() []string {
	return []string{
		"주문번호",
		"접수일시",
		"요청자",
		"매체",
		"업체",
		"납기일",
		"수량",
		"상태",
		"주문유형",
		"공급가",
		"부가세",
		"합계",
	}
}

func jobExportRowValues(job entity.Job, cost *entity.Cost) []interface{} {
	subtotal, vat, total := "", "", ""
	if cost != nil {
		subtotal = strconv.Itoa(cost.Subtotal)
		vat = strconv.Itoa(cost.VAT)
		total = strconv.Itoa(cost.Total)
	}
	return []interface{}{
		job.JobID,
		job.CreatedAt,
		job.RequesterName,
		job.MediaName,
		job.Vendor,
		job.DueDate,
		job.Qty,
		job.Status,
		job.OrderType,
		subtotal,
		vat,
		total,
	}
}

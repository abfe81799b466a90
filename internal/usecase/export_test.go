package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/print-order-board/internal/domain/entity"
)

func TestBuildJobsXLSX(t *testing.T) {
	jobs := newStubJobRepo()
	svc := newTestOrderService(jobs, nil, nil)

	if _, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		OrderType:     "book",
		RequesterName: "김편집",
		MediaID:       "mg-001",
		DueDate:       "2026-03-10",
		Qty:           "100",
	}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	data, err := svc.BuildJobsXLSX(context.Background(), entity.JobFilter{})
	if err != nil {
		t.Fatalf("BuildJobsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1 job", len(rows))
	}
	if rows[0][0] != "주문번호" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][2] != "김편집" {
		t.Fatalf("requester cell = %q", rows[1][2])
	}
	// Last column carries the VAT-inclusive total.
	if rows[1][len(rows[1])-1] != "1408000" {
		t.Fatalf("total cell = %q", rows[1][len(rows[1])-1])
	}
}

package sheets

import (
	"context"
	"fmt"
)

// fakeClient is an in-memory RangeClient. Rows are stored per table the
// same shape FetchRange returns them; writes mutate the slice directly.
type fakeClient struct {
	tables map[string][][]string

	fetchCount  map[string]int
	updateCalls []updateCall
	deleteCalls []deleteCall
}

type updateCall struct {
	table    string
	rowIndex int
	row      []string
}

type deleteCall struct {
	table    string
	rowIndex int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		tables:     make(map[string][][]string),
		fetchCount: make(map[string]int),
	}
}

func (f *fakeClient) FetchRange(_ context.Context, table, _ string) ([][]string, error) {
	f.fetchCount[table]++
	src := f.tables[table]
	out := make([][]string, len(src))
	for i, row := range src {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (f *fakeClient) UpdateRow(_ context.Context, table string, rowIndex int, _ string, row []string) error {
	if rowIndex < 1 {
		return fmt.Errorf("row index %d", rowIndex)
	}
	f.updateCalls = append(f.updateCalls, updateCall{table: table, rowIndex: rowIndex, row: append([]string(nil), row...)})
	rows := f.tables[table]
	for len(rows) < rowIndex {
		rows = append(rows, nil)
	}
	rows[rowIndex-1] = append([]string(nil), row...)
	f.tables[table] = rows
	return nil
}

func (f *fakeClient) AppendRow(_ context.Context, table, _ string, row []string) error {
	f.tables[table] = append(f.tables[table], append([]string(nil), row...))
	return nil
}

func (f *fakeClient) DeleteRow(_ context.Context, table string, rowIndex int) error {
	f.deleteCalls = append(f.deleteCalls, deleteCall{table: table, rowIndex: rowIndex})
	rows := f.tables[table]
	if rowIndex < 1 || rowIndex > len(rows) {
		return fmt.Errorf("row %d out of range", rowIndex)
	}
	f.tables[table] = append(rows[:rowIndex-1], rows[rowIndex:]...)
	return nil
}

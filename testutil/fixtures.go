package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/osoko/erpdeck/internal"
)

// SamplePayloadJSON mixes qualifying and non-qualifying keys: only inventory
// and work_orders should surface as datasets.
const SamplePayloadJSON = `{
	"summary": "3 items low on stock",
	"inventory": [
		{"sku": "PMP-221", "name": "Coolant pump", "quantity": 4, "warehouse": "North", "unit_cost": 310.25},
		{"sku": "BLT-118", "name": "Drive belt", "quantity": 2, "warehouse": "North", "unit_cost": 18},
		{"sku": "FLT-904", "name": "Oil filter", "quantity": 1, "warehouse": "East", "unit_cost": 9.99}
	],
	"empty_set": [],
	"work_orders": [
		{"order_id": "WO-1001", "order_status": "in_progress", "priority": "high", "due_date": "2026-03-20"},
		{"order_id": "WO-1002", "order_status": "completed", "priority": "low", "due_date": "2026-03-18"}
	],
	"not_a_list": {"k": "v"}
}`

// StubQueryClient is a scriptable QueryClient for tests.
type StubQueryClient struct {
	Result  internal.QueryResult
	Err     error
	Caps    internal.Capabilities
	CapsErr error
	Queries []string
}

// Query records the query text and returns the scripted result.
func (c *StubQueryClient) Query(_ context.Context, text string, _ internal.Mode) (internal.QueryResult, error) {
	c.Queries = append(c.Queries, text)
	if c.Err != nil {
		return internal.QueryResult{}, c.Err
	}
	return c.Result, nil
}

// Capabilities returns the scripted capabilities.
func (c *StubQueryClient) Capabilities(_ context.Context) (internal.Capabilities, error) {
	if c.CapsErr != nil {
		return internal.Capabilities{}, c.CapsErr
	}
	return c.Caps, nil
}

// SuccessClient builds a stub that answers every query with the sample
// payload.
func SuccessClient() *StubQueryClient {
	return &StubQueryClient{
		Result: internal.QueryResult{
			Success:  true,
			Response: "Here is what I found.",
			Analysis: "Low stock detected in two warehouses.",
			Data:     internal.MustPayload(SamplePayloadJSON),
		},
	}
}

// FailingClient builds a stub whose queries fail with a terminal error.
func FailingClient(msg string) *StubQueryClient {
	return &StubQueryClient{Err: fmt.Errorf("%s", msg)}
}

// OpenTestHistory creates a history store backed by a throwaway database
// under t.TempDir.
func OpenTestHistory(t *testing.T) *internal.HistoryStore {
	t.Helper()
	store, err := internal.OpenHistoryStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open test history store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// SeedRecords builds n records with an id field and a status field cycling
// through the given values.
func SeedRecords(t *testing.T, n int, statuses ...string) []*internal.Record {
	t.Helper()
	if len(statuses) == 0 {
		statuses = []string{"pending"}
	}
	records := make([]*internal.Record, 0, n)
	for i := 0; i < n; i++ {
		rec, err := internal.NewRecord(
			"item_id", fmt.Sprintf("IT-%03d", i+1),
			"status", statuses[i%len(statuses)],
		)
		if err != nil {
			t.Fatalf("Failed to build record: %v", err)
		}
		records = append(records, rec)
	}
	return records
}

package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tailorbooks/backoffice_backend/models"
)

type fakeStore struct {
	invoices map[int]*models.Invoice
	company  *models.Company
	nextId   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{invoices: map[int]*models.Invoice{}, nextId: 1}
}

func (f *fakeStore) GetAllInvoices(ctx context.Context) ([]*models.Invoice, error) {
	out := make([]*models.Invoice, 0, len(f.invoices))
	for id := 1; id < f.nextId; id++ {
		if inv, ok := f.invoices[id]; ok {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeStore) GetInvoiceById(ctx context.Context, id int) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, fmt.Errorf("invoice %d not found", id)
	}
	return inv, nil
}

func (f *fakeStore) CreateInvoice(ctx context.Context, input *models.NewInvoice) (*models.Invoice, error) {
	inv := &models.Invoice{
		ID:            f.nextId,
		InvoiceNumber: input.InvoiceNumber,
		CustomerId:    input.CustomerId,
		InvoiceDate:   time.Now(),
	}
	for _, d := range input.Details {
		inv.Details = append(inv.Details, models.InvoiceItem{
			Description:    d.Description,
			DetailQty:      d.DetailQty,
			DetailUnitRate: d.DetailUnitRate,
		})
	}
	f.invoices[f.nextId] = inv
	f.nextId++
	return inv, nil
}

func (f *fakeStore) UpdateInvoice(ctx context.Context, id int, input *models.NewInvoice) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, fmt.Errorf("invoice %d not found", id)
	}
	inv.InvoiceNumber = input.InvoiceNumber
	return inv, nil
}

func (f *fakeStore) DeleteInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, fmt.Errorf("invoice %d not found", id)
	}
	delete(f.invoices, id)
	return inv, nil
}

func (f *fakeStore) GetCompanyInfo(ctx context.Context) (*models.Company, error) {
	if f.company == nil {
		return nil, fmt.Errorf("company not configured")
	}
	return f.company, nil
}

func (f *fakeStore) SaveCompanyInfo(ctx context.Context, input *models.NewCompany) (*models.Company, error) {
	f.company = &models.Company{ID: 1, Name: input.Name, Gstin: input.Gstin}
	return f.company, nil
}

func serve(t *testing.T, store Store, lines ...string) []map[string]any {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	srv := NewServer(store, nil)
	if err := srv.Serve(context.Background(), in, &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	var responses []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var resp map[string]any
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("bad response line %q: %v", line, err)
		}
		responses = append(responses, resp)
	}
	return responses
}

func TestServe_SaveAndFetchInvoice(t *testing.T) {
	store := newFakeStore()
	responses := serve(t, store,
		`{"id":1,"method":"saveInvoice","payload":{"invoice_number":"INV-001","customer_id":7,"details":[{"description":"Kurta stitching","detail_qty":"2","detail_unit_rate":"1,500.00","apply_cgst":true,"apply_sgst":true,"cgst_rate":9,"sgst_rate":9}]}}`,
		`{"id":2,"method":"getInvoiceById","payload":{"id":1}}`,
		`{"id":3,"method":"getAllInvoices"}`,
	)
	if len(responses) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(responses))
	}
	for i, resp := range responses {
		if resp["error"] != nil {
			t.Fatalf("response %d unexpected error: %v", i, resp["error"])
		}
	}
	if responses[0]["id"].(float64) != 1 {
		t.Fatalf("response id not echoed: %v", responses[0]["id"])
	}

	inv, err := store.GetInvoiceById(context.Background(), 1)
	if err != nil {
		t.Fatalf("stored invoice missing: %v", err)
	}
	if !inv.Details[0].DetailUnitRate.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("formatted rate not parsed, got %s", inv.Details[0].DetailUnitRate)
	}
}

func TestServe_CompanyRoundTrip(t *testing.T) {
	store := newFakeStore()
	responses := serve(t, store,
		`{"id":"a","method":"saveCompanyInfo","payload":{"name":"Sharma Tailors","gstin":"27AAPFU0939F1ZV"}}`,
		`{"id":"b","method":"getCompanyInfo"}`,
	)
	if responses[0]["error"] != nil || responses[1]["error"] != nil {
		t.Fatalf("unexpected errors: %v", responses)
	}
	result := responses[1]["result"].(map[string]any)
	if result["name"] != "Sharma Tailors" {
		t.Fatalf("expected saved company back, got %v", result)
	}
	if responses[0]["id"] != "a" {
		t.Fatalf("string id not echoed: %v", responses[0]["id"])
	}
}

func TestServe_UnknownMethod(t *testing.T) {
	responses := serve(t, newFakeStore(), `{"id":9,"method":"selfDestruct"}`)
	errMsg, _ := responses[0]["error"].(string)
	if !strings.Contains(errMsg, "unknown method") {
		t.Fatalf("expected unknown method error, got %v", responses[0])
	}
}

func TestServe_MalformedLineDoesNotStopLoop(t *testing.T) {
	store := newFakeStore()
	responses := serve(t, store,
		`{not json`,
		`{"id":2,"method":"getAllInvoices"}`,
	)
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	if _, ok := responses[0]["error"].(string); !ok {
		t.Fatalf("malformed line should produce an error response, got %v", responses[0])
	}
	if responses[1]["error"] != nil {
		t.Fatalf("loop should survive malformed line, got %v", responses[1])
	}
}

func TestServe_DeleteInvoice(t *testing.T) {
	store := newFakeStore()
	_, _ = store.CreateInvoice(context.Background(), &models.NewInvoice{InvoiceNumber: "INV-009", CustomerId: 1})
	responses := serve(t, store,
		`{"id":1,"method":"deleteInvoice","payload":{"id":1}}`,
		`{"id":2,"method":"getInvoiceById","payload":{"id":1}}`,
	)
	if responses[0]["error"] != nil {
		t.Fatalf("delete failed: %v", responses[0])
	}
	if responses[1]["error"] == nil {
		t.Fatalf("deleted invoice should not resolve: %v", responses[1])
	}
}

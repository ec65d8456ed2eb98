package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tailorbooks/backoffice_backend/config"
	"github.com/tailorbooks/backoffice_backend/models"
)

// Store is the persistence surface the bridge dispatches into. The HTTP
// server and the bridge share the same models layer; tests swap in a fake.
type Store interface {
	GetAllInvoices(ctx context.Context) ([]*models.Invoice, error)
	GetInvoiceById(ctx context.Context, id int) (*models.Invoice, error)
	CreateInvoice(ctx context.Context, input *models.NewInvoice) (*models.Invoice, error)
	UpdateInvoice(ctx context.Context, id int, input *models.NewInvoice) (*models.Invoice, error)
	DeleteInvoice(ctx context.Context, id int) (*models.Invoice, error)
	GetCompanyInfo(ctx context.Context) (*models.Company, error)
	SaveCompanyInfo(ctx context.Context, input *models.NewCompany) (*models.Company, error)
}

type request struct {
	Id      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Payload json.RawMessage `json:"payload"`
}

type response struct {
	Id     json.RawMessage `json:"id"`
	Result any             `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Server reads one JSON request per line and writes one JSON response per
// line. Requests are handled in order; the writer is serialized.
type Server struct {
	store  Store
	logger *logrus.Logger

	mu  sync.Mutex
	out *bufio.Writer
}

func NewServer(store Store, logger *logrus.Logger) *Server {
	return &Server{store: store, logger: logger}
}

// Serve pumps requests from r until EOF. A malformed line produces an error
// response with a null id rather than killing the loop.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.out = bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.write(response{Id: json.RawMessage("null"), Error: "malformed request: " + err.Error()})
			continue
		}
		s.dispatch(ctx, req)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("bridge read: %w", err)
	}
	return nil
}

func (s *Server) dispatch(ctx context.Context, req request) {
	id := req.Id
	if len(id) == 0 {
		id = json.RawMessage("null")
	}

	result, err := s.handle(ctx, req.Method, req.Payload)
	if err != nil {
		if s.logger != nil {
			config.LogError(s.logger, "bridge.go", "dispatch", req.Method, nil, err)
		}
		s.write(response{Id: id, Error: err.Error()})
		return
	}
	s.write(response{Id: id, Result: result})
}

func (s *Server) handle(ctx context.Context, method string, payload json.RawMessage) (any, error) {
	switch method {
	case "getAllInvoices":
		return s.store.GetAllInvoices(ctx)
	case "getInvoiceById":
		id, err := decodeId(payload)
		if err != nil {
			return nil, err
		}
		return s.store.GetInvoiceById(ctx, id)
	case "saveInvoice":
		return s.saveInvoice(ctx, payload)
	case "deleteInvoice":
		id, err := decodeId(payload)
		if err != nil {
			return nil, err
		}
		return s.store.DeleteInvoice(ctx, id)
	case "getCompanyInfo":
		return s.store.GetCompanyInfo(ctx)
	case "saveCompanyInfo":
		var input models.NewCompany
		if err := decodePayload(payload, &input); err != nil {
			return nil, err
		}
		return s.store.SaveCompanyInfo(ctx, &input)
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

// saveInvoice creates when no id is supplied and updates otherwise. Amounts
// arrive as the desktop front-end formats them, so the payload goes through
// the lenient decoder before it reaches the models layer.
func (s *Server) saveInvoice(ctx context.Context, payload json.RawMessage) (any, error) {
	var p invoicePayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	input := p.toNewInvoice()
	if p.Id > 0 {
		return s.store.UpdateInvoice(ctx, p.Id, input)
	}
	return s.store.CreateInvoice(ctx, input)
}

func (s *Server) write(resp response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	encoded, err := json.Marshal(resp)
	if err != nil {
		encoded = []byte(`{"id":null,"error":"response encoding failed"}`)
	}
	_, _ = s.out.Write(encoded)
	_ = s.out.WriteByte('\n')
	_ = s.out.Flush()
}

type idPayload struct {
	Id int `json:"id"`
}

func decodeId(payload json.RawMessage) (int, error) {
	var p idPayload
	if err := decodePayload(payload, &p); err != nil {
		return 0, err
	}
	if p.Id <= 0 {
		return 0, fmt.Errorf("id must be a positive integer")
	}
	return p.Id, nil
}

func decodePayload(payload json.RawMessage, out any) error {
	if len(payload) == 0 {
		return fmt.Errorf("payload is required")
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("malformed payload: %w", err)
	}
	return nil
}

// ModelStore backs the bridge with the shared models layer.
type ModelStore struct{}

func (ModelStore) GetAllInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return models.GetInvoices(ctx, nil, nil)
}

func (ModelStore) GetInvoiceById(ctx context.Context, id int) (*models.Invoice, error) {
	return models.GetInvoice(ctx, id)
}

func (ModelStore) CreateInvoice(ctx context.Context, input *models.NewInvoice) (*models.Invoice, error) {
	return models.CreateInvoice(ctx, input)
}

func (ModelStore) UpdateInvoice(ctx context.Context, id int, input *models.NewInvoice) (*models.Invoice, error) {
	return models.UpdateInvoice(ctx, id, input)
}

func (ModelStore) DeleteInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	return models.DeleteInvoice(ctx, id)
}

func (ModelStore) GetCompanyInfo(ctx context.Context) (*models.Company, error) {
	return models.GetCompany(ctx)
}

func (ModelStore) SaveCompanyInfo(ctx context.Context, input *models.NewCompany) (*models.Company, error) {
	return models.SaveCompany(ctx, input)
}

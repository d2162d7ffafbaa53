package inventory

import (
	"context"
	"sync"

	pkgerrors "github.com/angelmondragon/labstock-backend/pkg/errors"
	"github.com/angelmondragon/labstock-backend/pkg/logger"
)

// Metrics is the instrumentation surface the service reports to.
type Metrics interface {
	IncOperation(op string)
	SetUnits(master, available int)
}

type noopMetrics struct{}

func (noopMetrics) IncOperation(string) {}
func (noopMetrics) SetUnits(int, int)   {}

// ServiceParams groups dependencies for the inventory service.
type ServiceParams struct {
	Store   *Store
	Logger  *logger.Logger
	Metrics Metrics
}

// Service validates caller input and applies it to the store.
type Service interface {
	ListProducts(ctx context.Context, query string) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	CreateProduct(ctx context.Context, form ProductForm) (Product, error)
	UpdateProduct(ctx context.Context, id string, form ProductUpdateForm) (Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Restock(ctx context.Context, id string, form RestockForm) (Product, error)
	MarkDefective(ctx context.Context, id string, form DefectiveForm) (Product, error)
	ListRecords(ctx context.Context, productID string) ([]Record, error)
	CreateRecord(ctx context.Context, productID string, form RecordForm) (Record, error)
	MonthlyReport(ctx context.Context) ([]MonthlyReport, error)
	Totals(ctx context.Context) (Totals, error)
}

// service serialises writers so a form is validated against the same product
// state the store then mutates.
type service struct {
	writeMu sync.Mutex
	store   *Store
	logg    *logger.Logger
	metrics Metrics
}

// NewService builds an inventory service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory store is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	metrics := params.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}
	svc := &service{
		store:   params.Store,
		logg:    params.Logger,
		metrics: metrics,
	}
	svc.publishUnits()
	return svc, nil
}

func errProductNotFound() error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *service) ListProducts(ctx context.Context, query string) ([]Product, error) {
	return s.store.SearchProducts(query), nil
}

func (s *service) GetProduct(ctx context.Context, id string) (Product, error) {
	product, ok := s.store.GetProduct(id)
	if !ok {
		return Product{}, errProductNotFound()
	}
	return product, nil
}

func (s *service) CreateProduct(ctx context.Context, form ProductForm) (Product, error) {
	input, err := form.Validate()
	if err != nil {
		return Product{}, err
	}
	product := s.store.AddProduct(input.Name, input.MasterCount, input.Availability)
	s.applied(ctx, "product.create", product.ID)
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, form ProductUpdateForm) (Product, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, ok := s.store.GetProduct(id)
	if !ok {
		return Product{}, errProductNotFound()
	}
	patch, err := form.Validate(current)
	if err != nil {
		return Product{}, err
	}
	product, ok := s.store.UpdateProduct(id, patch)
	if !ok {
		return Product{}, errProductNotFound()
	}
	s.applied(ctx, "product.update", id)
	return product, nil
}

// DeleteProduct is idempotent: deleting an absent product succeeds.
func (s *service) DeleteProduct(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.store.DeleteProduct(id) {
		s.applied(ctx, "product.delete", id)
	}
	return nil
}

func (s *service) Restock(ctx context.Context, id string, form RestockForm) (Product, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, ok := s.store.GetProduct(id); !ok {
		return Product{}, errProductNotFound()
	}
	quantity, err := form.Validate()
	if err != nil {
		return Product{}, err
	}
	product, ok := s.store.AddPurchasedItems(id, quantity)
	if !ok {
		return Product{}, invalid("quantity", "Master count is already at capacity")
	}
	s.applied(ctx, "product.restock", id)
	return product, nil
}

func (s *service) MarkDefective(ctx context.Context, id string, form DefectiveForm) (Product, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, ok := s.store.GetProduct(id)
	if !ok {
		return Product{}, errProductNotFound()
	}
	quantity, err := form.Validate(current)
	if err != nil {
		return Product{}, err
	}
	product, ok := s.store.MarkDefective(id, quantity)
	if !ok {
		return Product{}, errProductNotFound()
	}
	s.applied(ctx, "product.defective", id)
	return product, nil
}

func (s *service) ListRecords(ctx context.Context, productID string) ([]Record, error) {
	if _, ok := s.store.GetProduct(productID); !ok {
		return nil, errProductNotFound()
	}
	return s.store.GetProductRecords(productID), nil
}

func (s *service) CreateRecord(ctx context.Context, productID string, form RecordForm) (Record, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	product, ok := s.store.GetProduct(productID)
	if !ok {
		return Record{}, errProductNotFound()
	}
	input, err := form.Validate(product)
	if err != nil {
		return Record{}, err
	}
	record, ok := s.store.AddBorrowRecord(input)
	if !ok {
		return Record{}, errProductNotFound()
	}
	s.applied(ctx, "record."+string(record.Type), productID)
	return record, nil
}

func (s *service) MonthlyReport(ctx context.Context) ([]MonthlyReport, error) {
	return s.store.GetMonthlyReport(), nil
}

func (s *service) Totals(ctx context.Context) (Totals, error) {
	return s.store.Totals(), nil
}

func (s *service) applied(ctx context.Context, op, productID string) {
	s.metrics.IncOperation(op)
	s.publishUnits()
	ctx = s.logg.WithFields(ctx, map[string]any{
		"op":         op,
		"product_id": productID,
	})
	s.logg.Info(ctx, "inventory.applied")
}

func (s *service) publishUnits() {
	totals := s.store.Totals()
	s.metrics.SetUnits(totals.MasterCount, totals.Availability)
}

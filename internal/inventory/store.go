package inventory

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/labstock-backend/pkg/enums"
	"github.com/google/uuid"
)

// Store is the in-memory system of record for products, transaction records
// and the restock/defect ledger. Mutations hold the write lock for their whole
// body so no partial update is observable; reads return copies.
//
// Store operations never fail. Absent ids and non-positive quantities are
// no-ops reported through the returned bool, and counts are clamped so that
// 0 <= availability <= masterCount always holds.
type Store struct {
	mu       sync.RWMutex
	products []Product
	records  []Record
	ledger   []StockEvent

	now      func() time.Time
	newID    func() string
	location *time.Location
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the identifier source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithLocation sets the timezone used to bucket records into months.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.location = loc
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		newID:    uuid.NewString,
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddProduct stores a new product, clamping availability into [0, masterCount].
func (s *Store) AddProduct(name string, masterCount, availability int) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: s.now(),
	}
	product.MasterCount, product.Availability = clampCounts(masterCount, availability)
	s.products = append(s.products, product)
	return product
}

// UpdateProduct merges patch into the product. The id and creation time are
// immutable and the counts are re-clamped after the merge.
func (s *Store) UpdateProduct(id string, patch ProductPatch) (Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Product{}, false
	}

	product := &s.products[idx]
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	master, available := product.MasterCount, product.Availability
	if patch.MasterCount != nil {
		master = *patch.MasterCount
	}
	if patch.Availability != nil {
		available = *patch.Availability
	}
	product.MasterCount, product.Availability = clampCounts(master, available)
	return *product, true
}

// DeleteProduct removes the product with its records and ledger events.
// Deleting an absent id changes nothing and reports false.
func (s *Store) DeleteProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)

	records := s.records[:0]
	for _, record := range s.records {
		if record.ProductID != id {
			records = append(records, record)
		}
	}
	clear(s.records[len(records):])
	s.records = records

	ledger := s.ledger[:0]
	for _, event := range s.ledger {
		if event.ProductID != id {
			ledger = append(ledger, event)
		}
	}
	clear(s.ledger[len(ledger):])
	s.ledger = ledger
	return true
}

// AddPurchasedItems restocks a product: both counts grow by quantity,
// saturating at math.MaxInt. The ledger records the units actually added.
func (s *Store) AddPurchasedItems(id string, quantity int) (Product, bool) {
	if quantity <= 0 {
		return Product{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Product{}, false
	}
	product := &s.products[idx]
	added := min(quantity, math.MaxInt-product.MasterCount)
	if added == 0 {
		return *product, false
	}
	product.MasterCount += added
	product.Availability += added
	s.appendEvent(id, enums.StockEventTypeRestock, added)
	return *product, true
}

// MarkDefective takes units out of availability, floored at zero. The ledger
// records the units actually removed; when nothing is available the call is a
// no-op and reports false.
func (s *Store) MarkDefective(id string, quantity int) (Product, bool) {
	if quantity <= 0 {
		return Product{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Product{}, false
	}
	product := &s.products[idx]
	removed := min(quantity, product.Availability)
	if removed == 0 {
		return *product, false
	}
	product.Availability -= removed
	s.appendEvent(id, enums.StockEventTypeDefective, removed)
	return *product, true
}

// AddBorrowRecord appends a record and applies it to the product's counts:
// a purchase lowers masterCount and availability, a borrow lowers availability
// only. Records for absent products, unknown types or non-positive quantities
// are dropped.
func (s *Store) AddBorrowRecord(input NewRecord) (Record, bool) {
	if input.Quantity <= 0 || !input.Type.IsValid() {
		return Record{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(input.ProductID)
	if idx < 0 {
		return Record{}, false
	}

	record := Record{
		ID:          s.newID(),
		ProductID:   input.ProductID,
		StudentName: input.StudentName,
		USN:         input.USN,
		PhoneNumber: input.PhoneNumber,
		Section:     input.Section,
		TakenDate:   input.TakenDate,
		ReturnDate:  input.ReturnDate,
		Type:        input.Type,
		Quantity:    input.Quantity,
		CreatedAt:   s.now(),
	}
	s.records = append(s.records, record)

	product := &s.products[idx]
	switch record.Type {
	case enums.RecordTypePurchase:
		product.MasterCount = max(0, product.MasterCount-record.Quantity)
		product.Availability = max(0, product.Availability-record.Quantity)
	case enums.RecordTypeBorrow:
		product.Availability = max(0, product.Availability-record.Quantity)
	}
	return record, true
}

// GetProductRecords returns the product's records in storage order.
func (s *Store) GetProductRecords(productID string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Record{}
	for _, record := range s.records {
		if record.ProductID == productID {
			out = append(out, record)
		}
	}
	return out
}

func (s *Store) GetProduct(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Product{}, false
	}
	return s.products[idx], true
}

// Products returns every product in insertion order.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Product{}, s.products...)
}

// SearchProducts matches query as a case-insensitive substring of the name.
// A blank query returns everything.
func (s *Store) SearchProducts(query string) []Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return s.Products()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Product{}
	for _, product := range s.products {
		if strings.Contains(strings.ToLower(product.Name), needle) {
			out = append(out, product)
		}
	}
	return out
}

func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Record{}, s.records...)
}

func (s *Store) Ledger() []StockEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]StockEvent{}, s.ledger...)
}

func (s *Store) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalsLocked()
}

func (s *Store) totalsLocked() Totals {
	totals := Totals{Products: len(s.products)}
	for _, product := range s.products {
		totals.MasterCount = saturatingAdd(totals.MasterCount, product.MasterCount)
		totals.Availability = saturatingAdd(totals.Availability, product.Availability)
	}
	for _, record := range s.records {
		switch record.Type {
		case enums.RecordTypeBorrow:
			totals.Borrowed = saturatingAdd(totals.Borrowed, record.Quantity)
		case enums.RecordTypePurchase:
			totals.Purchased = saturatingAdd(totals.Purchased, record.Quantity)
		}
	}
	return totals
}

// Seed loads a snapshot as-is. Records are not applied to product counts; the
// snapshot is expected to already reflect them. Counts are still clamped.
func (s *Store) Seed(products []Product, records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, product := range products {
		product.MasterCount, product.Availability = clampCounts(product.MasterCount, product.Availability)
		s.products = append(s.products, product)
	}
	s.records = append(s.records, records...)
}

func (s *Store) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) appendEvent(productID string, eventType enums.StockEventType, quantity int) {
	s.ledger = append(s.ledger, StockEvent{
		ID:        s.newID(),
		ProductID: productID,
		Type:      eventType,
		Quantity:  quantity,
		CreatedAt: s.now(),
	})
}

func clampCounts(masterCount, availability int) (int, int) {
	masterCount = max(0, masterCount)
	availability = min(max(0, availability), masterCount)
	return masterCount, availability
}

// saturatingAdd adds two non-negative counts, pinning at math.MaxInt.
func saturatingAdd(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

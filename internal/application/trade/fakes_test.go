package trade

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/comercio/backend/internal/domain/catalog"
	"github.com/comercio/backend/internal/domain/document"
	"github.com/comercio/backend/internal/domain/identity"
	"github.com/comercio/backend/internal/domain/partner"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// nextCodeFrom computes the next sequential code the way the persistence
// layer does: scan issued codes for the prefix in the current year and
// bump the highest sequence.
func nextCodeFrom(codes []string, prefix string) string {
	year := time.Now().Year()
	last := ""
	best := -1
	for _, code := range codes {
		if !strings.HasPrefix(code, prefix+"-") {
			continue
		}
		if !strings.HasSuffix(code, "-"+strconv.Itoa(year)) {
			continue
		}
		if seq := document.ParseSequence(code); seq > best {
			best = seq
			last = code
		}
	}
	return document.NextCode(prefix, last, year)
}

// ==================== Quotes ====================

type memQuoteRepo struct {
	rows []*document.Quote
}

func (r *memQuoteRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*document.Quote, error) {
	for _, q := range r.rows {
		if q.TenantID == tenantID && q.ID == id {
			// Return a copy so version checks compare against the stored
			// row, the way a real database read does.
			clone := *q
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memQuoteRepo) FindByCode(_ context.Context, tenantID uuid.UUID, code string) (*document.Quote, error) {
	for _, q := range r.rows {
		if q.TenantID == tenantID && q.Code == code {
			return q, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memQuoteRepo) FindAll(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]document.Quote, error) {
	var out []document.Quote
	for _, q := range r.rows {
		if q.TenantID == tenantID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *memQuoteRepo) FindByCustomer(_ context.Context, tenantID, customerID uuid.UUID, _ shared.Filter) ([]document.Quote, error) {
	var out []document.Quote
	for _, q := range r.rows {
		if q.TenantID == tenantID && q.CustomerID == customerID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *memQuoteRepo) Save(_ context.Context, quote *document.Quote) error {
	for i, q := range r.rows {
		if q.ID == quote.ID {
			r.rows[i] = quote
			return nil
		}
	}
	r.rows = append(r.rows, quote)
	return nil
}

func (r *memQuoteRepo) SaveWithLock(_ context.Context, quote *document.Quote, expectedVersion int) error {
	for i, q := range r.rows {
		if q.ID != quote.ID {
			continue
		}
		if q.Version != expectedVersion {
			return shared.ErrConcurrencyConflict
		}
		r.rows[i] = quote
		return nil
	}
	return shared.ErrNotFound
}

func (r *memQuoteRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	for i, q := range r.rows {
		if q.TenantID == tenantID && q.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memQuoteRepo) NextCode(_ context.Context, tenantID uuid.UUID) (string, error) {
	var codes []string
	for _, q := range r.rows {
		if q.TenantID == tenantID {
			codes = append(codes, q.Code)
		}
	}
	return nextCodeFrom(codes, document.CodePrefixQuote), nil
}

func (r *memQuoteRepo) LastNotesForCustomer(_ context.Context, tenantID, customerID uuid.UUID) (string, error) {
	for i := len(r.rows) - 1; i >= 0; i-- {
		q := r.rows[i]
		if q.TenantID == tenantID && q.CustomerID == customerID && q.Status != document.QuoteStatusRejected {
			return q.Notes, nil
		}
	}
	return "", nil
}

func (r *memQuoteRepo) LatestPricesForCustomer(_ context.Context, tenantID, customerID uuid.UUID) ([]document.ProductPrice, error) {
	latest := make(map[uuid.UUID]document.ProductPrice)
	for _, q := range r.rows {
		if q.TenantID != tenantID || q.CustomerID != customerID || q.Status == document.QuoteStatusRejected {
			continue
		}
		for _, item := range q.Items {
			latest[item.ProductID] = document.ProductPrice{ProductID: item.ProductID, UnitPrice: item.UnitPrice}
		}
	}
	out := make([]document.ProductPrice, 0, len(latest))
	for _, p := range latest {
		out = append(out, p)
	}
	return out, nil
}

func (r *memQuoteRepo) Count(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, q := range r.rows {
		if q.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// ==================== Sales ====================

type memSaleRepo struct {
	rows []*document.Sale
}

func (r *memSaleRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*document.Sale, error) {
	for _, s := range r.rows {
		if s.TenantID == tenantID && s.ID == id {
			// Return a copy so version checks compare against the stored
			// row, the way a real database read does.
			clone := *s
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSaleRepo) FindByCode(_ context.Context, tenantID uuid.UUID, code string) (*document.Sale, error) {
	for _, s := range r.rows {
		if s.TenantID == tenantID && s.Code == code {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSaleRepo) FindAll(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]document.Sale, error) {
	var out []document.Sale
	for _, s := range r.rows {
		if s.TenantID == tenantID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSaleRepo) FindByCustomer(_ context.Context, tenantID, customerID uuid.UUID, _ shared.Filter) ([]document.Sale, error) {
	var out []document.Sale
	for _, s := range r.rows {
		if s.TenantID == tenantID && s.CustomerID == customerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSaleRepo) FindBySource(_ context.Context, tenantID uuid.UUID, source document.SourceRef) (*document.Sale, error) {
	for _, s := range r.rows {
		if s.TenantID == tenantID && s.Source.Kind == source.Kind && s.Source.ID != nil && source.ID != nil && *s.Source.ID == *source.ID {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSaleRepo) Save(_ context.Context, sale *document.Sale) error {
	for i, s := range r.rows {
		if s.ID == sale.ID {
			r.rows[i] = sale
			return nil
		}
	}
	r.rows = append(r.rows, sale)
	return nil
}

func (r *memSaleRepo) SaveWithLock(_ context.Context, sale *document.Sale, expectedVersion int) error {
	for i, s := range r.rows {
		if s.ID != sale.ID {
			continue
		}
		if s.Version != expectedVersion {
			return shared.ErrConcurrencyConflict
		}
		r.rows[i] = sale
		return nil
	}
	return shared.ErrNotFound
}

func (r *memSaleRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	for i, s := range r.rows {
		if s.TenantID == tenantID && s.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memSaleRepo) NextCode(_ context.Context, tenantID uuid.UUID) (string, error) {
	var codes []string
	for _, s := range r.rows {
		if s.TenantID == tenantID {
			codes = append(codes, s.Code)
		}
	}
	return nextCodeFrom(codes, document.CodePrefixSale), nil
}

func (r *memSaleRepo) Count(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, s := range r.rows {
		if s.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// ==================== Purchase orders ====================

type memPurchaseOrderRepo struct {
	rows []*document.PurchaseOrder
}

func (r *memPurchaseOrderRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*document.PurchaseOrder, error) {
	for _, po := range r.rows {
		if po.TenantID == tenantID && po.ID == id {
			// Return a copy so version checks compare against the stored
			// row, the way a real database read does.
			clone := *po
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPurchaseOrderRepo) FindByCode(_ context.Context, tenantID uuid.UUID, code string) (*document.PurchaseOrder, error) {
	for _, po := range r.rows {
		if po.TenantID == tenantID && po.Code == code {
			return po, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPurchaseOrderRepo) FindAll(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]document.PurchaseOrder, error) {
	var out []document.PurchaseOrder
	for _, po := range r.rows {
		if po.TenantID == tenantID {
			out = append(out, *po)
		}
	}
	return out, nil
}

func (r *memPurchaseOrderRepo) FindByProvider(_ context.Context, tenantID, providerID uuid.UUID, _ shared.Filter) ([]document.PurchaseOrder, error) {
	var out []document.PurchaseOrder
	for _, po := range r.rows {
		if po.TenantID == tenantID && po.ProviderID == providerID {
			out = append(out, *po)
		}
	}
	return out, nil
}

func (r *memPurchaseOrderRepo) FindBySource(_ context.Context, tenantID uuid.UUID, source document.SourceRef) ([]document.PurchaseOrder, error) {
	var out []document.PurchaseOrder
	for _, po := range r.rows {
		if po.TenantID == tenantID && po.Source.Kind == source.Kind && po.Source.ID != nil && source.ID != nil && *po.Source.ID == *source.ID {
			out = append(out, *po)
		}
	}
	return out, nil
}

func (r *memPurchaseOrderRepo) ExistsBySource(ctx context.Context, tenantID uuid.UUID, source document.SourceRef) (bool, error) {
	matches, err := r.FindBySource(ctx, tenantID, source)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

func (r *memPurchaseOrderRepo) Save(_ context.Context, po *document.PurchaseOrder) error {
	for i, row := range r.rows {
		if row.ID == po.ID {
			r.rows[i] = po
			return nil
		}
	}
	r.rows = append(r.rows, po)
	return nil
}

func (r *memPurchaseOrderRepo) SaveWithLock(_ context.Context, po *document.PurchaseOrder, expectedVersion int) error {
	for i, row := range r.rows {
		if row.ID != po.ID {
			continue
		}
		if row.Version != expectedVersion {
			return shared.ErrConcurrencyConflict
		}
		r.rows[i] = po
		return nil
	}
	return shared.ErrNotFound
}

func (r *memPurchaseOrderRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	for i, po := range r.rows {
		if po.TenantID == tenantID && po.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memPurchaseOrderRepo) NextCode(_ context.Context, tenantID uuid.UUID) (string, error) {
	var codes []string
	for _, po := range r.rows {
		if po.TenantID == tenantID {
			codes = append(codes, po.Code)
		}
	}
	return nextCodeFrom(codes, document.CodePrefixPurchaseOrder), nil
}

func (r *memPurchaseOrderRepo) LastNotesForCustomer(_ context.Context, tenantID, customerID uuid.UUID) (string, error) {
	for i := len(r.rows) - 1; i >= 0; i-- {
		po := r.rows[i]
		if po.TenantID != tenantID || po.Status == document.PurchaseOrderStatusCancelled {
			continue
		}
		if po.CustomerID != nil && *po.CustomerID == customerID {
			return po.Notes, nil
		}
	}
	return "", nil
}

func (r *memPurchaseOrderRepo) Count(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, po := range r.rows {
		if po.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// ==================== Products ====================

type memProductRepo struct {
	rows []*catalog.Product
}

func (r *memProductRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	for _, p := range r.rows {
		if p.TenantID == tenantID && p.ID == id {
			// Return a copy so version checks compare against the stored
			// row, the way a real database read does.
			clone := *p
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []catalog.Product
	for _, p := range r.rows {
		if p.TenantID == tenantID && wanted[p.ID] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindBySKU(_ context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	for _, p := range r.rows {
		if p.TenantID == tenantID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAll(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.rows {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindByProvider(_ context.Context, tenantID, providerID uuid.UUID) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.rows {
		if p.TenantID == tenantID && p.ProviderID != nil && *p.ProviderID == providerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	for i, p := range r.rows {
		if p.ID == product.ID {
			r.rows[i] = product
			return nil
		}
	}
	r.rows = append(r.rows, product)
	return nil
}

func (r *memProductRepo) SaveWithLock(_ context.Context, product *catalog.Product, expectedVersion int) error {
	for i, p := range r.rows {
		if p.ID != product.ID {
			continue
		}
		if p.Version != expectedVersion {
			return shared.ErrConcurrencyConflict
		}
		r.rows[i] = product
		return nil
	}
	return shared.ErrNotFound
}

func (r *memProductRepo) Count(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, p := range r.rows {
		if p.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// ==================== Customers ====================

type memCustomerRepo struct {
	rows []*partner.Customer
}

func (r *memCustomerRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	for _, c := range r.rows {
		if c.TenantID == tenantID && c.ID == id {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomerRepo) FindByIDWithUbigeo(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	return r.FindByID(ctx, tenantID, id)
}

func (r *memCustomerRepo) FindByTaxID(_ context.Context, tenantID uuid.UUID, taxID string) (*partner.Customer, error) {
	for _, c := range r.rows {
		if c.TenantID == tenantID && c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomerRepo) FindAll(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]partner.Customer, error) {
	var out []partner.Customer
	for _, c := range r.rows {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) Save(_ context.Context, customer *partner.Customer) error {
	for i, c := range r.rows {
		if c.ID == customer.ID {
			r.rows[i] = customer
			return nil
		}
	}
	r.rows = append(r.rows, customer)
	return nil
}

func (r *memCustomerRepo) Count(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, c := range r.rows {
		if c.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// ==================== Providers ====================

type memProviderRepo struct {
	rows []*partner.Provider
}

func (r *memProviderRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*partner.Provider, error) {
	for _, p := range r.rows {
		if p.TenantID == tenantID && p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProviderRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]partner.Provider, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []partner.Provider
	for _, p := range r.rows {
		if p.TenantID == tenantID && wanted[p.ID] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProviderRepo) FindByTaxID(_ context.Context, tenantID uuid.UUID, taxID string) (*partner.Provider, error) {
	for _, p := range r.rows {
		if p.TenantID == tenantID && p.TaxID == taxID {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProviderRepo) FindAll(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]partner.Provider, error) {
	var out []partner.Provider
	for _, p := range r.rows {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProviderRepo) Save(_ context.Context, provider *partner.Provider) error {
	for i, p := range r.rows {
		if p.ID == provider.ID {
			r.rows[i] = provider
			return nil
		}
	}
	r.rows = append(r.rows, provider)
	return nil
}

// ==================== Enterprises ====================

type memEnterpriseRepo struct {
	rows []*identity.Enterprise
}

func (r *memEnterpriseRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Enterprise, error) {
	for _, e := range r.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memEnterpriseRepo) FindByTaxID(_ context.Context, taxID string) (*identity.Enterprise, error) {
	for _, e := range r.rows {
		if e.TaxID == taxID {
			return e, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memEnterpriseRepo) FindBySubdomain(_ context.Context, subdomain string) (*identity.Enterprise, error) {
	for _, e := range r.rows {
		if e.Subdomain == subdomain {
			return e, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memEnterpriseRepo) FindAll(_ context.Context, _ shared.Filter) ([]identity.Enterprise, error) {
	var out []identity.Enterprise
	for _, e := range r.rows {
		out = append(out, *e)
	}
	return out, nil
}

func (r *memEnterpriseRepo) Save(_ context.Context, enterprise *identity.Enterprise) error {
	for i, e := range r.rows {
		if e.ID == enterprise.ID {
			r.rows[i] = enterprise
			return nil
		}
	}
	r.rows = append(r.rows, enterprise)
	return nil
}

func (r *memEnterpriseRepo) ExistsBySubdomain(_ context.Context, subdomain string) (bool, error) {
	for _, e := range r.rows {
		if e.Subdomain == subdomain {
			return true, nil
		}
	}
	return false, nil
}

// ==================== Fixture ====================

// tradeFixture wires the in-memory repositories behind a NoOpTransactionScope
// and keeps direct handles so tests can seed and inspect state.
type tradeFixture struct {
	scope       *NoOpTransactionScope
	quotes      *memQuoteRepo
	sales       *memSaleRepo
	orders      *memPurchaseOrderRepo
	products    *memProductRepo
	customers   *memCustomerRepo
	providers   *memProviderRepo
	enterprises *memEnterpriseRepo
}

func newTradeFixture() *tradeFixture {
	f := &tradeFixture{
		quotes:      &memQuoteRepo{},
		sales:       &memSaleRepo{},
		orders:      &memPurchaseOrderRepo{},
		products:    &memProductRepo{},
		customers:   &memCustomerRepo{},
		providers:   &memProviderRepo{},
		enterprises: &memEnterpriseRepo{},
	}
	f.scope = NewNoOpTransactionScope(
		f.quotes, f.sales, f.orders, f.products, f.customers, f.providers, f.enterprises,
	)
	return f
}

var (
	_ document.QuoteRepository         = (*memQuoteRepo)(nil)
	_ document.SaleRepository          = (*memSaleRepo)(nil)
	_ document.PurchaseOrderRepository = (*memPurchaseOrderRepo)(nil)
	_ catalog.ProductRepository        = (*memProductRepo)(nil)
	_ partner.CustomerRepository       = (*memCustomerRepo)(nil)
	_ partner.ProviderRepository       = (*memProviderRepo)(nil)
	_ identity.EnterpriseRepository    = (*memEnterpriseRepo)(nil)
)

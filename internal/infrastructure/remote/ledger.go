package remote

import (
	"context"
	"iter"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

var _ inventory.Ledger = (*Ledger)(nil)

// Ledger inventory.Ledger sobre la API REST. El backend valida y confirma cada movimiento.
type Ledger struct {
	client *Client
	token  TokenFunc
}

// NewLedger construye el ledger remoto.
func NewLedger(client *Client, token TokenFunc) *Ledger {
	return &Ledger{client: client, token: token}
}

func (l *Ledger) call(ctx context.Context, method, path string, in, out any) error {
	tok, err := l.token(ctx)
	if err != nil {
		return err
	}
	return l.client.do(ctx, method, path, tok, in, out)
}

// RegisterProduct POST /api/products.
func (l *Ledger) RegisterProduct(ctx context.Context, _ string, p *entity.Product) (*entity.Product, error) {
	if p == nil {
		return nil, domain.ErrInvalidInput
	}
	var out dto.ProductResponse
	in := dto.CreateProductRequest{Code: p.Code, Name: p.Name, Category: p.Category, Quantity: p.Quantity, Price: p.Price}
	if err := l.call(ctx, http.MethodPost, "/api/products", in, &out); err != nil {
		return nil, err
	}
	return out.Entity(), nil
}

// StockIn POST /api/products/:code/stock-in. El actor lo fija el backend a partir del token.
func (l *Ledger) StockIn(ctx context.Context, _ string, code string, amount int) (*inventory.StockResult, error) {
	return l.move(ctx, code, "stock-in", amount)
}

// StockOut POST /api/products/:code/stock-out.
func (l *Ledger) StockOut(ctx context.Context, _ string, code string, amount int) (*inventory.StockResult, error) {
	return l.move(ctx, code, "stock-out", amount)
}

func (l *Ledger) move(ctx context.Context, code, action string, amount int) (*inventory.StockResult, error) {
	if amount <= 0 || amount > entity.MaxQuantity {
		return nil, domain.ErrInvalidAmount
	}
	var out dto.StockResponse
	path := "/api/products/" + url.PathEscape(code) + "/" + action
	if err := l.call(ctx, http.MethodPost, path, dto.StockRequest{Amount: amount}, &out); err != nil {
		return nil, err
	}
	return &inventory.StockResult{Product: out.Product.Entity(), Movement: out.Movement.Entity()}, nil
}

// LowStockReport GET /api/products/low-stock. La secuencia recorre la respuesta ya recibida.
func (l *Ledger) LowStockReport(ctx context.Context) (iter.Seq[entity.Product], error) {
	var out dto.ProductListResponse
	if err := l.call(ctx, http.MethodGet, "/api/products/low-stock", nil, &out); err != nil {
		return nil, err
	}
	return inventory.LowStock(entities(out.Items)), nil
}

// RecentMovements GET /api/movements?limit=n.
func (l *Ledger) RecentMovements(ctx context.Context, n int) ([]*entity.Movement, error) {
	if n <= 0 {
		return []*entity.Movement{}, nil
	}
	var out dto.MovementListResponse
	if err := l.call(ctx, http.MethodGet, "/api/movements?limit="+strconv.Itoa(n), nil, &out); err != nil {
		return nil, err
	}
	movs := make([]*entity.Movement, 0, len(out.Items))
	for _, m := range out.Items {
		movs = append(movs, m.Entity())
	}
	return movs, nil
}

// History GET /api/products/:code/movements.
func (l *Ledger) History(ctx context.Context, code string) ([]*entity.Movement, error) {
	var out dto.MovementListResponse
	if err := l.call(ctx, http.MethodGet, "/api/products/"+url.PathEscape(code)+"/movements", nil, &out); err != nil {
		return nil, err
	}
	movs := make([]*entity.Movement, 0, len(out.Items))
	for _, m := range out.Items {
		movs = append(movs, m.Entity())
	}
	return movs, nil
}

// RegisterSupplier POST /api/suppliers.
func (l *Ledger) RegisterSupplier(ctx context.Context, s *entity.Supplier) (*entity.Supplier, error) {
	if s == nil {
		return nil, domain.ErrInvalidInput
	}
	var out dto.SupplierResponse
	in := dto.CreateSupplierRequest{Name: s.Name, TaxID: s.TaxID, Phone: s.Phone, Email: s.Email}
	if err := l.call(ctx, http.MethodPost, "/api/suppliers", in, &out); err != nil {
		return nil, err
	}
	return out.Entity(), nil
}

// Products GET /api/products con ?code= y ?category=.
func (l *Ledger) Products(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	q := url.Values{}
	if filter.Code != "" {
		q.Set("code", filter.Code)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out dto.ProductListResponse
	if err := l.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return entities(out.Items), nil
}

// Suppliers GET /api/suppliers.
func (l *Ledger) Suppliers(ctx context.Context) ([]*entity.Supplier, error) {
	var out dto.SupplierListResponse
	if err := l.call(ctx, http.MethodGet, "/api/suppliers", nil, &out); err != nil {
		return nil, err
	}
	list := make([]*entity.Supplier, 0, len(out.Items))
	for _, s := range out.Items {
		list = append(list, s.Entity())
	}
	return list, nil
}

// Dashboard GET /api/dashboard.
func (l *Ledger) Dashboard(ctx context.Context) (*inventory.Summary, error) {
	var out dto.DashboardDTO
	if err := l.call(ctx, http.MethodGet, "/api/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &inventory.Summary{
		ProductCount:  out.ProductCount,
		TotalUnits:    out.TotalUnits,
		LowStockCount: out.LowStockCount,
		StockValue:    out.StockValue,
	}, nil
}

func entities(items []dto.ProductResponse) []*entity.Product {
	out := make([]*entity.Product, 0, len(items))
	for _, p := range items {
		out = append(out, p.Entity())
	}
	return out
}

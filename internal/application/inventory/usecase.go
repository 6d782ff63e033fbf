package inventory

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
	"github.com/jhoicas/controle-estoque/pkg/cnpj"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

var _ Ledger = (*Service)(nil)

// Service Ledger local: cada cambio de saldo y su movimiento se confirman en la misma
// transacción, con la fila del producto bloqueada (GetForUpdate).
type Service struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	supplierRepo repository.SupplierRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewService construye el ledger local.
func NewService(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	supplierRepo repository.SupplierRepository,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		supplierRepo: supplierRepo,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// RegisterProduct valida y crea el producto junto con su movimiento de saldo inicial.
func (s *Service) RegisterProduct(ctx context.Context, actor string, p *entity.Product) (*entity.Product, error) {
	if p == nil {
		return nil, domain.ErrInvalidInput
	}
	in := *p
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: código y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad inicial no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.Quantity > entity.MaxQuantity {
		return nil, fmt.Errorf("%w: la cantidad inicial supera %d", domain.ErrInvalidInput, entity.MaxQuantity)
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	now := s.now()
	in.CreatedAt, in.UpdatedAt = now, now

	err := s.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		if err := productRepo.Create(ctx, &in); err != nil {
			return err
		}
		if in.Quantity == 0 {
			return nil
		}
		return movRepo.Create(ctx, &entity.Movement{
			ID:          uuid.New().String(),
			ProductCode: in.Code,
			Kind:        entity.MovementIn,
			Amount:      in.Quantity,
			Timestamp:   now,
			Actor:       actor,
		})
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("code", in.Code).Int("quantity", in.Quantity).Str("actor", actor).Msg("producto registrado")
	return &in, nil
}

// StockIn suma amount al saldo y registra la entrada.
func (s *Service) StockIn(ctx context.Context, actor, code string, amount int) (*StockResult, error) {
	return s.move(ctx, actor, code, entity.MovementIn, amount)
}

// StockOut resta amount del saldo; nunca deja el saldo negativo.
func (s *Service) StockOut(ctx context.Context, actor, code string, amount int) (*StockResult, error) {
	return s.move(ctx, actor, code, entity.MovementOut, amount)
}

func (s *Service) move(ctx context.Context, actor, code string, kind entity.MovementKind, amount int) (*StockResult, error) {
	if amount <= 0 || amount > entity.MaxQuantity {
		return nil, domain.ErrInvalidAmount
	}
	var res StockResult
	err := s.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		// Bloquea la fila del producto hasta el commit
		product, err := productRepo.GetForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, code)
		}
		mov := &entity.Movement{
			ID:               uuid.New().String(),
			ProductCode:      code,
			Kind:             kind,
			Amount:           amount,
			PreviousQuantity: product.Quantity,
			Timestamp:        s.now(),
			Actor:            actor,
		}
		if kind == entity.MovementIn && product.Quantity > entity.MaxQuantity-amount {
			return fmt.Errorf("%w: el saldo superaría %d", domain.ErrInvalidAmount, entity.MaxQuantity)
		}
		next := product.Quantity + mov.Delta()
		if next < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateQuantity(ctx, code, next); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		product.Quantity = next
		product.UpdatedAt = mov.Timestamp
		res = StockResult{Product: product, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("code", code).
		Str("kind", string(kind)).
		Int("amount", amount).
		Int("quantity", res.Product.Quantity).
		Str("actor", actor).
		Msg("movimiento registrado")
	if res.Product.LowStock() {
		s.log.Warn().Str("code", code).Int("quantity", res.Product.Quantity).Msg("stock bajo")
	}
	return &res, nil
}

// LowStockReport carga el catálogo una vez; la secuencia se puede recorrer varias veces.
func (s *Service) LowStockReport(ctx context.Context) (iter.Seq[entity.Product], error) {
	products, err := s.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	return LowStock(products), nil
}

// RecentMovements últimos n movimientos; n <= 0 no devuelve ninguno.
// El valor por defecto lo aplican los llamadores (HTTP, CLI).
func (s *Service) RecentMovements(ctx context.Context, n int) ([]*entity.Movement, error) {
	if n <= 0 {
		return []*entity.Movement{}, nil
	}
	return s.movementRepo.ListRecent(ctx, n)
}

// RegisterSupplier valida y registra un proveedor (CNPJ único).
func (s *Service) RegisterSupplier(ctx context.Context, in *entity.Supplier) (*entity.Supplier, error) {
	if in == nil {
		return nil, domain.ErrInvalidInput
	}
	sup := *in
	sup.Name = strings.TrimSpace(sup.Name)
	sup.TaxID = strings.TrimSpace(sup.TaxID)
	if sup.Name == "" || sup.TaxID == "" {
		return nil, fmt.Errorf("%w: nombre y CNPJ son obligatorios", domain.ErrInvalidInput)
	}
	// Con 14 dígitos se guarda en forma canónica para que la unicidad ignore la puntuación.
	if formatted, ok := cnpj.Format(sup.TaxID); ok {
		if !cnpj.Valid(formatted) {
			s.log.Warn().Str("tax_id", formatted).Msg("CNPJ con dígitos verificadores inválidos")
		}
		sup.TaxID = formatted
	}
	existing, err := s.supplierRepo.GetByTaxID(ctx, sup.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateTaxID, sup.TaxID)
	}
	sup.CreatedAt = s.now()
	// La restricción única sigue cubriendo la carrera entre la consulta y el alta.
	if err := s.supplierRepo.Create(ctx, &sup); err != nil {
		return nil, err
	}
	return &sup, nil
}

// Products consulta por código, por categoría o todo el catálogo.
func (s *Service) Products(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	return s.productRepo.List(ctx, filter)
}

// Suppliers lista de proveedores.
func (s *Service) Suppliers(ctx context.Context) ([]*entity.Supplier, error) {
	return s.supplierRepo.List(ctx)
}

// Dashboard indicadores del catálogo.
func (s *Service) Dashboard(ctx context.Context) (*Summary, error) {
	products, err := s.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	return Summarize(products), nil
}

// History movimientos de un producto en orden cronológico.
func (s *Service) History(ctx context.Context, code string) ([]*entity.Movement, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, code)
	}
	return s.movementRepo.ListByProduct(ctx, code)
}

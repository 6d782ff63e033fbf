package inventory_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/localstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newService(t *testing.T) *inventory.Service {
	t.Helper()
	s := localstore.NewStore(localstore.NewMemoryLists())
	return inventory.NewService(s, s.Products(), s.Movements(), s.Suppliers(), nil)
}

func register(t *testing.T, svc *inventory.Service, code string, qty int) {
	t.Helper()
	_, err := svc.RegisterProduct(context.Background(), "admin", &entity.Product{
		Code: code, Name: "Produto " + code, Category: "Geral", Quantity: qty,
		Price: decimal.RequireFromString("2.50"),
	})
	require.NoError(t, err)
}

func quantity(t *testing.T, svc *inventory.Service, code string) int {
	t.Helper()
	items, err := svc.Products(context.Background(), repository.ProductFilter{Code: code})
	require.NoError(t, err)
	require.Len(t, items, 1)
	return items[0].Quantity
}

// ledgerBalance Σ entradas − Σ salidas del producto.
func ledgerBalance(t *testing.T, svc *inventory.Service, code string) int {
	t.Helper()
	movs, err := svc.History(context.Background(), code)
	require.NoError(t, err)
	total := 0
	for _, m := range movs {
		total += m.Delta()
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestEndToEnd_P1(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	register(t, svc, "P1", 0)

	res, err := svc.StockIn(ctx, "funcionario", "P1", 12)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Product.Quantity)
	assert.Equal(t, entity.MovementIn, res.Movement.Kind)
	assert.Equal(t, 12, res.Movement.Amount)
	assert.Equal(t, 0, res.Movement.PreviousQuantity)

	movs, err := svc.History(ctx, "P1")
	require.NoError(t, err)
	assert.Len(t, movs, 1)

	_, err = svc.StockOut(ctx, "funcionario", "P1", 15)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 12, quantity(t, svc, "P1"))

	res, err = svc.StockOut(ctx, "funcionario", "P1", 12)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Product.Quantity)
	assert.True(t, res.Product.LowStock())
	assert.Equal(t, 0, ledgerBalance(t, svc, "P1"))
}

func TestRegisterProduct_Errors(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	register(t, svc, "P1", 3)

	_, err := svc.RegisterProduct(ctx, "admin", &entity.Product{Code: "P1", Name: "Outro"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	_, err = svc.RegisterProduct(ctx, "admin", &entity.Product{Code: "", Name: "Sem código"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.RegisterProduct(ctx, "admin", &entity.Product{Code: "P2", Name: "Neg", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.RegisterProduct(ctx, "admin", &entity.Product{Code: "P3", Name: "Neg", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.RegisterProduct(ctx, "admin", &entity.Product{Code: "P4", Name: "Big", Quantity: entity.MaxQuantity + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterProduct_InitialQuantityIsMovement(t *testing.T) {
	svc := newService(t)
	register(t, svc, "P1", 7)
	assert.Equal(t, 7, ledgerBalance(t, svc, "P1"))
}

func TestStock_Errors(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	register(t, svc, "P1", 5)

	_, err := svc.StockIn(ctx, "a", "NOPE", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.StockOut(ctx, "a", "NOPE", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, amount := range []int{0, -3} {
		_, err = svc.StockIn(ctx, "a", "P1", amount)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		_, err = svc.StockOut(ctx, "a", "P1", amount)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
	assert.Equal(t, 5, quantity(t, svc, "P1"))
	assert.Equal(t, 5, ledgerBalance(t, svc, "P1"))
}

func TestStockIn_QuantityCeiling(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	register(t, svc, "P1", 5)

	_, err := svc.StockIn(ctx, "a", "P1", math.MaxInt)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = svc.StockOut(ctx, "a", "P1", math.MaxInt)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	// El saldo resultante tampoco puede pasar del techo.
	_, err = svc.StockIn(ctx, "a", "P1", entity.MaxQuantity-4)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, 5, quantity(t, svc, "P1"))
	assert.Equal(t, 5, ledgerBalance(t, svc, "P1"))

	res, err := svc.StockIn(ctx, "a", "P1", entity.MaxQuantity-5)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxQuantity, res.Product.Quantity)
	assert.Equal(t, entity.MaxQuantity, ledgerBalance(t, svc, "P1"))
}

func TestLedgerInvariant_RandomSequence(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	codes := []string{"A", "B", "C"}
	for _, c := range codes {
		register(t, svc, c, 0)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		code := codes[rng.Intn(len(codes))]
		amount := rng.Intn(20) - 2
		if rng.Intn(2) == 0 {
			_, _ = svc.StockIn(ctx, "bot", code, amount)
		} else {
			_, _ = svc.StockOut(ctx, "bot", code, amount)
		}
		q := quantity(t, svc, code)
		require.GreaterOrEqual(t, q, 0)
	}
	for _, c := range codes {
		assert.Equal(t, quantity(t, svc, c), ledgerBalance(t, svc, c), "saldo de %s", c)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Informes
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockReport(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	register(t, svc, "A", 5)
	register(t, svc, "B", 15)
	register(t, svc, "C", 9)

	report, err := svc.LowStockReport(ctx)
	require.NoError(t, err)

	collect := func() []string {
		var out []string
		for p := range report {
			out = append(out, p.Code)
		}
		return out
	}
	assert.Equal(t, []string{"A", "C"}, collect())
	assert.Equal(t, []string{"A", "C"}, collect(), "la secuencia es reiniciable")

	for p := range report {
		assert.Equal(t, "A", p.Code)
		break
	}
}

func TestRecentMovements(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	register(t, svc, "P1", 0)
	for i := 1; i <= 12; i++ {
		_, err := svc.StockIn(ctx, "a", "P1", i)
		require.NoError(t, err)
	}

	recent, err := svc.RecentMovements(ctx, inventory.DefaultRecentMovements)
	require.NoError(t, err)
	require.Len(t, recent, inventory.DefaultRecentMovements)
	assert.Equal(t, 12, recent[0].Amount, "el más reciente primero")
	assert.Equal(t, 3, recent[9].Amount)

	for _, n := range []int{0, -1} {
		recent, err = svc.RecentMovements(ctx, n)
		require.NoError(t, err)
		assert.Empty(t, recent, "n=%d", n)
	}

	recent, err = svc.RecentMovements(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestHistory(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	register(t, svc, "P1", 4)
	register(t, svc, "P2", 0)
	_, err := svc.StockOut(ctx, "b", "P1", 3)
	require.NoError(t, err)
	_, err = svc.StockIn(ctx, "c", "P2", 1)
	require.NoError(t, err)

	movs, err := svc.History(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementIn, movs[0].Kind, "orden cronológico")
	assert.Equal(t, 4, movs[0].Amount)
	assert.Equal(t, entity.MovementOut, movs[1].Kind)
	assert.Equal(t, 4, movs[1].PreviousQuantity)

	movs, err = svc.History(ctx, "P2")
	require.NoError(t, err)
	assert.Len(t, movs, 1)

	_, err = svc.History(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSuppliers(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.RegisterSupplier(ctx, &entity.Supplier{Name: "Acme", TaxID: "11.111.111/0001-11"})
	require.NoError(t, err)
	_, err = svc.RegisterSupplier(ctx, &entity.Supplier{Name: "Outra", TaxID: "11.111.111/0001-11"})
	assert.ErrorIs(t, err, domain.ErrDuplicateTaxID)
	_, err = svc.RegisterSupplier(ctx, &entity.Supplier{Name: "", TaxID: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := svc.Suppliers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSuppliers_TaxIDCanonicalForm(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	sup, err := svc.RegisterSupplier(ctx, &entity.Supplier{Name: "Acme", TaxID: "11222333000181"})
	require.NoError(t, err)
	assert.Equal(t, "11.222.333/0001-81", sup.TaxID)

	_, err = svc.RegisterSupplier(ctx, &entity.Supplier{Name: "Outra", TaxID: "11.222.333/0001-81"})
	assert.ErrorIs(t, err, domain.ErrDuplicateTaxID)

	// Otros formatos se guardan tal cual.
	sup, err = svc.RegisterSupplier(ctx, &entity.Supplier{Name: "Loja", TaxID: "ISENTO"})
	require.NoError(t, err)
	assert.Equal(t, "ISENTO", sup.TaxID)
}

func TestDashboard(t *testing.T) {
	svc := newService(t)
	register(t, svc, "A", 5)
	register(t, svc, "B", 15)

	sum, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.ProductCount)
	assert.Equal(t, 20, sum.TotalUnits)
	assert.Equal(t, 1, sum.LowStockCount)
	assert.True(t, sum.StockValue.Equal(decimal.RequireFromString("50")))
}

func TestReplenishment(t *testing.T) {
	svc := newService(t)
	register(t, svc, "A", 8)
	register(t, svc, "B", 15)
	register(t, svc, "C", 2)

	list, err := inventory.NewReplenishmentUseCase(svc).GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C", list[0].Product.Code)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 13, list[0].SuggestedOrderQty)
	assert.True(t, list[0].EstimatedOrderCost.Equal(decimal.RequireFromString("32.5")))
	assert.Equal(t, "A", list[1].Product.Code)
}

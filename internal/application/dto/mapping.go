package dto

import "github.com/jhoicas/controle-estoque/internal/domain/entity"

// FromPrincipal construye la salida de un principal.
func FromPrincipal(p *entity.Principal) UserResponse {
	superuser, staff := p.Role.Flags()
	return UserResponse{
		Username:    p.Name,
		Role:        string(p.Role),
		IsSuperuser: superuser,
		IsStaff:     staff,
		BuiltIn:     p.BuiltIn,
		CreatedAt:   p.CreatedAt,
	}
}

// FromProduct construye la salida de un producto.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		Code:      p.Code,
		Name:      p.Name,
		Category:  p.Category,
		Quantity:  p.Quantity,
		Price:     p.Price,
		LowStock:  p.LowStock(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Entity operación inversa de FromProduct (cliente remoto).
func (r ProductResponse) Entity() *entity.Product {
	return &entity.Product{
		Code:      r.Code,
		Name:      r.Name,
		Category:  r.Category,
		Quantity:  r.Quantity,
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromMovement construye la salida de un movimiento.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:               m.ID,
		ProductCode:      m.ProductCode,
		Kind:             string(m.Kind),
		Amount:           m.Amount,
		PreviousQuantity: m.PreviousQuantity,
		Timestamp:        m.Timestamp,
		Actor:            m.Actor,
	}
}

// Entity operación inversa de FromMovement.
func (r MovementResponse) Entity() *entity.Movement {
	return &entity.Movement{
		ID:               r.ID,
		ProductCode:      r.ProductCode,
		Kind:             entity.MovementKind(r.Kind),
		Amount:           r.Amount,
		PreviousQuantity: r.PreviousQuantity,
		Timestamp:        r.Timestamp,
		Actor:            r.Actor,
	}
}

// FromSupplier construye la salida de un proveedor.
func FromSupplier(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		Name:      s.Name,
		TaxID:     s.TaxID,
		Phone:     s.Phone,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
	}
}

// Entity operación inversa de FromSupplier.
func (r SupplierResponse) Entity() *entity.Supplier {
	return &entity.Supplier{
		Name:      r.Name,
		TaxID:     r.TaxID,
		Phone:     r.Phone,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
	}
}

// TargetRole rol pedido en una promoción: Role explícito o, si falta, derivado de los flags.
// Devuelve false si no hay datos suficientes o el rol no existe.
func (r PromoteRequest) TargetRole() (entity.Role, bool) {
	if r.Role != "" {
		return entity.ParseRole(r.Role)
	}
	if r.IsSuperuser == nil && r.IsStaff == nil {
		return "", false
	}
	return entity.RoleFromFlags(r.IsSuperuser != nil && *r.IsSuperuser, r.IsStaff != nil && *r.IsStaff), true
}

package handler

import "github.com/shopstack/ecommerce-api/internal/core/domain"

// --- Request / Response types ---

// registerRequest deliberately has no role field: a client-supplied role is
// never accepted, every registration produces a customer.
type registerRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

type meResponse struct {
	User *domain.User `json:"user"`
}

type profileResponse struct {
	Message string          `json:"message"`
	User    domain.Identity `json:"user"`
}

type adminStats struct {
	TotalUsers  int             `json:"totalUsers"`
	TotalOrders int             `json:"totalOrders"`
	Revenue     float64         `json:"revenue"`
	AdminUser   domain.Identity `json:"adminUser"`
}

type adminResponse struct {
	Message string     `json:"message"`
	Data    adminStats `json:"data"`
}

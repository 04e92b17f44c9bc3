package handlers

import (
	adminRepo "velour/database/repository/admin"
)

// HandlerBundle aggregates the HTTP handlers plus the admin repository the
// auth middleware needs.
type HandlerBundle struct {
	BookingHandler *BookingHandler
	PaymentHandler *PaymentHandler
	AdminHandler   *AdminHandler
	CatalogHandler *CatalogHandler
	AdminRepo      adminRepo.AdminRepository
}

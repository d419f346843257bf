package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"name":       true,
	"price":      true,
	"status":     true,
}

// WarehouseSortFields contains allowed sort fields for warehouses
var WarehouseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"location":   true,
	"capacity":   true,
	"status":     true,
}

// VehicleSortFields contains allowed sort fields for vehicles
var VehicleSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"plate_number": true,
	"model":        true,
	"status":       true,
}

// DriverSortFields contains allowed sort fields for drivers
var DriverSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"license_number": true,
	"status":         true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"customer_name": true,
	"status":        true,
}

// ShipmentSortFields contains allowed sort fields for shipments
var ShipmentSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"tracking_number": true,
	"status":          true,
	"delivered_at":    true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"display_name":  true,
	"status":        true,
	"last_login_at": true,
}

// RoleSortFields contains allowed sort fields for roles
var RoleSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"is_system":  true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
	"plan":       true,
}

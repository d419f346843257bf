package logistics

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/logistics"
)

// CreateWarehouseRequest represents a request to create a new warehouse
type CreateWarehouseRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Location string `json:"location" binding:"max=500"`
	Capacity int64  `json:"capacity" binding:"min=0"`
}

// UpdateWarehouseRequest represents a request to update a warehouse
type UpdateWarehouseRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Location *string `json:"location" binding:"omitempty,max=500"`
	Capacity *int64  `json:"capacity" binding:"omitempty,min=0"`
	Status   *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int64     `json:"capacity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToWarehouseResponse converts a warehouse aggregate to its response form
func ToWarehouseResponse(warehouse *logistics.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		ID:        warehouse.ID,
		TenantID:  warehouse.TenantID,
		Name:      warehouse.Name,
		Location:  warehouse.Location,
		Capacity:  warehouse.Capacity,
		Status:    string(warehouse.Status),
		CreatedAt: warehouse.CreatedAt,
		UpdatedAt: warehouse.UpdatedAt,
		Version:   warehouse.Version,
	}
}

// CreateVehicleRequest represents a request to register a vehicle
type CreateVehicleRequest struct {
	PlateNumber string `json:"plate_number" binding:"required,min=1,max=50"`
	Model       string `json:"model" binding:"max=200"`
}

// UpdateVehicleRequest represents a request to update a vehicle
type UpdateVehicleRequest struct {
	Model  *string `json:"model" binding:"omitempty,max=200"`
	Status *string `json:"status" binding:"omitempty,oneof=available in_use maintenance retired"`
}

// VehicleResponse represents a vehicle in API responses
type VehicleResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	PlateNumber string    `json:"plate_number"`
	Model       string    `json:"model"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ToVehicleResponse converts a vehicle aggregate to its response form
func ToVehicleResponse(vehicle *logistics.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:          vehicle.ID,
		TenantID:    vehicle.TenantID,
		PlateNumber: vehicle.PlateNumber,
		Model:       vehicle.Model,
		Status:      string(vehicle.Status),
		CreatedAt:   vehicle.CreatedAt,
		UpdatedAt:   vehicle.UpdatedAt,
		Version:     vehicle.Version,
	}
}

// CreateDriverRequest represents a request to register a driver
type CreateDriverRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	LicenseNumber string `json:"license_number" binding:"required,min=1,max=100"`
	Phone         string `json:"phone" binding:"max=50"`
}

// UpdateDriverRequest represents a request to update a driver
type UpdateDriverRequest struct {
	Phone  *string `json:"phone" binding:"omitempty,max=50"`
	Status *string `json:"status" binding:"omitempty,oneof=available on_delivery off_duty"`
}

// DriverResponse represents a driver in API responses
type DriverResponse struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"license_number"`
	Phone         string    `json:"phone"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int       `json:"version"`
}

// ToDriverResponse converts a driver aggregate to its response form
func ToDriverResponse(driver *logistics.Driver) *DriverResponse {
	return &DriverResponse{
		ID:            driver.ID,
		TenantID:      driver.TenantID,
		Name:          driver.Name,
		LicenseNumber: driver.LicenseNumber,
		Phone:         driver.Phone,
		Status:        string(driver.Status),
		CreatedAt:     driver.CreatedAt,
		UpdatedAt:     driver.UpdatedAt,
		Version:       driver.Version,
	}
}

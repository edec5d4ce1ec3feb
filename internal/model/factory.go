package model

import (
	"time"

	"gorm.io/gorm"
)

// Department groups sectors, employees and machines.
type Department struct {
	ID          ID         `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string     `gorm:"type:text" json:"description"`
	Location    string     `gorm:"type:varchar(120)" json:"location"`
	Status      string     `gorm:"type:varchar(30)" json:"status" validate:"required"`
	Employees   Int        `gorm:"default:0" json:"employees" validate:"gte=0"`
	Budget      Amount     `gorm:"type:numeric(16,2);default:0" json:"budget" validate:"gte=0"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = NewID("dep")
	}
	if d.CreatedAt == nil {
		now := time.Now().UTC()
		d.CreatedAt = &now
	}
	return nil
}

// Sector is a production area inside a department.
type Sector struct {
	ID           ID     `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	DepartmentID ID     `gorm:"type:varchar(64);index" json:"departmentId" validate:"required"`
	Employees    Int    `gorm:"default:0" json:"employees" validate:"gte=0"`
	Efficiency   Int    `gorm:"default:0" json:"efficiency" validate:"gte=0,lte=100"`
	Production   Int    `gorm:"default:0" json:"production" validate:"gte=0"`
}

func (s *Sector) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID("sec")
	}
	return nil
}

// Employee is a factory worker assigned to a department and sector.
type Employee struct {
	ID           ID     `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	DepartmentID ID     `gorm:"type:varchar(64);index" json:"departmentId" validate:"required"`
	SectorID     ID     `gorm:"type:varchar(64);index" json:"sectorId" validate:"required"`
	Role         string `gorm:"type:varchar(120)" json:"role" validate:"required"`
	Shift        string `gorm:"type:varchar(30)" json:"shift" validate:"required"`
	Status       string `gorm:"type:varchar(30)" json:"status" validate:"required"`
	Photo        string `gorm:"type:text" json:"photo"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = NewID("emp")
	}
	return nil
}

// Machine is a piece of equipment on the shop floor. OEE is a fraction.
type Machine struct {
	ID              ID         `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name            string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	DepartmentID    ID         `gorm:"type:varchar(64);index" json:"departmentId" validate:"required"`
	SectorID        ID         `gorm:"type:varchar(64);index" json:"sectorId" validate:"required"`
	ModelID         ID         `gorm:"type:varchar(64)" json:"modelId,omitempty"`
	Status          string     `gorm:"type:varchar(30)" json:"status" validate:"required"`
	OEE             OEE        `gorm:"default:0" json:"oee" validate:"gte=0,lte=1"`
	Throughput      Int        `gorm:"default:0" json:"throughput" validate:"gte=0"`
	LastMaintenance *time.Time `json:"lastMaintenance,omitempty"`
	Photo           string     `gorm:"type:text" json:"photo"`
}

func (m *Machine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID("mac")
	}
	return nil
}

// MachineModel is a catalog entry describing a kind of machine.
type MachineModel struct {
	ID           ID     `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Manufacturer string `gorm:"type:varchar(255)" json:"manufacturer"`
	Description  string `gorm:"type:text" json:"description"`
}

func (m *MachineModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID("mdl")
	}
	return nil
}

// Allocation records an employee being put on a machine, optionally
// replacing the previous operator.
type Allocation struct {
	ID               ID         `gorm:"type:varchar(64);primaryKey" json:"id"`
	EmployeeID       ID         `gorm:"type:varchar(64);index" json:"employee" validate:"required"`
	MachineID        ID         `gorm:"type:varchar(64);index" json:"machine" validate:"required"`
	EmployeeName     string     `gorm:"type:varchar(255)" json:"nameEmployee"`
	ReplacedEmployee string     `gorm:"type:varchar(255)" json:"nameEmployeeChanged,omitempty"`
	AllocatedAt      *time.Time `json:"allocatedAt,omitempty"`
}

func (a *Allocation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID("alc")
	}
	if a.AllocatedAt == nil {
		now := time.Now().UTC()
		a.AllocatedAt = &now
	}
	return nil
}

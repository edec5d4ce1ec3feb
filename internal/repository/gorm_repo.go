package repository

import (
	"errors"
	"fmt"
	"math"

	"go-factory-console/internal/model"

	"gorm.io/gorm"
)

// scope narrows a query by one filter value.
type scope func(db *gorm.DB, value string) *gorm.DB

func ilike(column string) scope {
	return func(db *gorm.DB, value string) *gorm.DB {
		return db.Where(column+" ILIKE ?", "%"+value+"%")
	}
}

func equals(column string) scope {
	return func(db *gorm.DB, value string) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

func inSectorsNamed(db *gorm.DB, value string) *gorm.DB {
	return db.Where("sector_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Model(&model.Sector{}).Select("id").Where("name ILIKE ?", "%"+value+"%"))
}

func inDepartmentsNamed(db *gorm.DB, value string) *gorm.DB {
	return db.Where("department_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Model(&model.Department{}).Select("id").Where("name ILIKE ?", "%"+value+"%"))
}

type gormRepo[T any] struct {
	db      *gorm.DB
	filters map[string]scope
	prepare func(db *gorm.DB, item *T) error
	cascade func(tx *gorm.DB, id model.ID) error
}

func (r *gormRepo[T]) query(p model.ListParams) *gorm.DB {
	q := r.db.Model(new(T))
	for key, apply := range r.filters {
		if v, ok := p.Filter(key); ok {
			q = apply(q, v)
		}
	}
	return q
}

func (r *gormRepo[T]) List(p model.ListParams) (model.Page[T], error) {
	var total int64
	if err := r.query(p).Count(&total).Error; err != nil {
		return model.Page[T]{}, err
	}

	rows := []T{}
	number, size := p.Number(), p.Size()
	// Pages past the end are empty; checking first keeps number*size from overflowing.
	if int64(number) <= total/int64(size) {
		err := r.query(p).Order("id").Offset(number * size).Limit(size).Find(&rows).Error
		if err != nil {
			return model.Page[T]{}, err
		}
	}

	pages := int(math.Ceil(float64(total) / float64(size)))
	return model.Page[T]{
		Content:       rows,
		TotalElements: total,
		TotalPages:    pages,
		Number:        number,
		Size:          size,
		First:         number == 0,
		Last:          number >= pages-1,
	}, nil
}

func (r *gormRepo[T]) Get(id model.ID) (T, error) {
	var row T
	err := r.db.First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, ErrNotFound
	}
	return row, err
}

func (r *gormRepo[T]) Create(item T) (T, error) {
	if r.prepare != nil {
		if err := r.prepare(r.db, &item); err != nil {
			return item, err
		}
	}
	err := r.db.Create(&item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return item, ErrDuplicate
	}
	return item, err
}

func (r *gormRepo[T]) Update(id model.ID, item T) (T, error) {
	if _, err := r.Get(id); err != nil {
		return item, err
	}
	if r.prepare != nil {
		if err := r.prepare(r.db, &item); err != nil {
			return item, err
		}
	}
	err := r.db.Model(new(T)).Where("id = ?", id).Select("*").Omit("id").Updates(&item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return item, ErrDuplicate
	}
	if err != nil {
		return item, err
	}
	return r.Get(id)
}

// Delete removes the row and, for departments and sectors, everything
// attached to it, in one transaction.
func (r *gormRepo[T]) Delete(id model.ID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(new(T), "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if r.cascade != nil {
			return r.cascade(tx, id)
		}
		return nil
	})
}

func cascadeDepartmentTx(tx *gorm.DB, id model.ID) error {
	sectors := tx.Session(&gorm.Session{NewDB: true}).Model(&model.Sector{}).Select("id").Where("department_id = ?", id)
	if err := tx.Where("department_id = ? OR sector_id IN (?)", id, sectors).Delete(&model.Employee{}).Error; err != nil {
		return err
	}
	if err := tx.Where("department_id = ? OR sector_id IN (?)", id, sectors).Delete(&model.Machine{}).Error; err != nil {
		return err
	}
	return tx.Where("department_id = ?", id).Delete(&model.Sector{}).Error
}

func cascadeSectorTx(tx *gorm.DB, id model.ID) error {
	if err := tx.Where("sector_id = ?", id).Delete(&model.Employee{}).Error; err != nil {
		return err
	}
	return tx.Where("sector_id = ?", id).Delete(&model.Machine{}).Error
}

// prepareAllocationTx fills the employee names the way the factory service
// reports them.
func prepareAllocationTx(db *gorm.DB, a *model.Allocation) error {
	var employee model.Employee
	if err := db.First(&employee, "id = ?", a.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("employee %s: %w", a.EmployeeID, ErrNotFound)
		}
		return err
	}
	var machines int64
	if err := db.Model(&model.Machine{}).Where("id = ?", a.MachineID).Count(&machines).Error; err != nil {
		return err
	}
	if machines == 0 {
		return fmt.Errorf("machine %s: %w", a.MachineID, ErrNotFound)
	}

	a.EmployeeName = employee.Name
	a.ReplacedEmployee = ""
	var prev model.Allocation
	err := db.Where("machine_id = ? AND id <> ?", a.MachineID, a.ID).Order("allocated_at DESC").First(&prev).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return err
	case prev.EmployeeID != a.EmployeeID:
		a.ReplacedEmployee = prev.EmployeeName
	}
	return nil
}

type gormUsers struct {
	db *gorm.DB
}

func (u gormUsers) FindByEmail(email string) (model.User, error) {
	var user model.User
	err := u.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrNotFound
	}
	return user, err
}

func (u gormUsers) Create(user model.User) (model.User, error) {
	if _, err := u.FindByEmail(user.Email); err == nil {
		return model.User{}, ErrDuplicate
	}
	if err := u.db.Create(&user).Error; err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (u gormUsers) UpdatePassword(email, hashedPassword string) error {
	res := u.db.Model(&model.User{}).Where("LOWER(email) = LOWER(?)", email).Update("password_hash", hashedPassword)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NewGormSet returns the repositories over a postgres database.
func NewGormSet(db *gorm.DB) Set {
	return Set{
		Stock: &gormRepo[model.StockItem]{db: db},
		Employees: &gormRepo[model.Employee]{db: db, filters: map[string]scope{
			"employee-name": ilike("name"),
			"employee-id":   equals("id"),
			"shift":         ilike("shift"),
			"sector-name":   inSectorsNamed,
		}},
		Machines: &gormRepo[model.Machine]{db: db, filters: map[string]scope{
			"machine-name":   ilike("name"),
			"sector-name":    inSectorsNamed,
			"status-machine": ilike("status"),
		}},
		MachineModels: &gormRepo[model.MachineModel]{db: db},
		Departments: &gormRepo[model.Department]{db: db, cascade: cascadeDepartmentTx, filters: map[string]scope{
			"department-name":   ilike("name"),
			"status-department": ilike("status"),
			"department-budget": equals("budget"),
		}},
		Sectors: &gormRepo[model.Sector]{db: db, cascade: cascadeSectorTx, filters: map[string]scope{
			"sector-name":     ilike("name"),
			"department-name": inDepartmentsNamed,
		}},
		Allocations: &gormRepo[model.Allocation]{db: db, prepare: prepareAllocationTx, filters: map[string]scope{
			"name-employee":         ilike("employee_name"),
			"name-employee-changed": ilike("replaced_employee"),
		}},
		Users: gormUsers{db},
	}
}

// Migrate creates the demo tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Department{},
		&model.Sector{},
		&model.Employee{},
		&model.Machine{},
		&model.MachineModel{},
		&model.StockItem{},
		&model.Allocation{},
		&model.User{},
	)
}

// Seed loads the demo dataset into an empty database. A database that
// already holds departments is left alone.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Department{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		departments, sectors, employees := seedDepartments(), seedSectors(), seedEmployees()
		models, machines, stock, users := seedMachineModels(), seedMachines(), seedStock(), seedUsers()
		rows := []interface{}{&departments, &sectors, &employees, &models, &machines, &stock, &users}
		for _, r := range rows {
			if err := tx.Create(r).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

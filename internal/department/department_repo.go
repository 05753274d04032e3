package department

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]DepartmentWithCount, error)
	FindByID(ctx context.Context, id int64) (*Department, error)
	CountEmployees(ctx context.Context, id int64) (int64, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, dept *Department) error
	DetachEmployees(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.conn(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context) ([]DepartmentWithCount, error) {
	var rows []DepartmentWithCount
	err := r.conn(ctx).
		Model(&Department{}).
		Select("departments.*, COUNT(employees.id) AS employee_count").
		Joins("LEFT JOIN employees ON employees.department_id = departments.id").
		Group("departments.id").
		Order("departments.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Department, error) {
	var dept Department
	err := r.conn(ctx).First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) CountEmployees(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.conn(ctx).
		Table("employees").
		Where("department_id = ?", id).
		Count(&n).Error
	return n, err
}

// ExistsByName compares names case-insensitively. excludeID lets a rename
// keep its own name; pass 0 on create.
func (r *repository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var n int64
	q := r.conn(ctx).
		Model(&Department{}).
		Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.conn(ctx).Save(dept).Error
}

func (r *repository) DetachEmployees(ctx context.Context, id int64) error {
	return r.conn(ctx).
		Table("employees").
		Where("department_id = ?", id).
		Update("department_id", nil).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.conn(ctx).Delete(&Department{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package employee

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	ResolveDepartment(ctx context.Context, name string) (*DepartmentRef, error)
	Update(ctx context.Context, empl *Employee) error
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

// conn runs statements on the bound transaction when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit(clause.Associations).Create(empl).Error
}

// FindAll returns every employee in id order, which is the order clients see.
func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Preload("Department").
		Order("id ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Preload("Department").
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Preload("Department").
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&empl).Error
	return &empl, err
}

// ResolveDepartment finds the department called name regardless of case,
// creating it when missing. A match keeps its stored spelling. An empty
// name resolves to no department.
func (r *repository) ResolveDepartment(ctx context.Context, name string) (*DepartmentRef, error) {
	if name == "" {
		return nil, nil
	}

	var dept DepartmentRef
	err := r.conn(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Order("id").
		Limit(1).
		Find(&dept).Error
	if err != nil {
		return nil, err
	}
	if dept.ID != 0 {
		return &dept, nil
	}

	dept = DepartmentRef{Name: name}
	if err := r.conn(ctx).Create(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit(clause.Associations).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.conn(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

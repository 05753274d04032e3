package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go-employee-admin/internal/department"
	"go-employee-admin/internal/domain"
	employeeerrors "go-employee-admin/internal/employee/errors"
	"go-employee-admin/internal/events"
	"go-employee-admin/internal/listing"
	"go-employee-admin/internal/messaging/kafka"
	"go-employee-admin/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKey = "employees:options"

const optionsTTL = time.Hour

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (domain.Employee, error)
	GetAll(ctx context.Context) ([]domain.Employee, error)
	GetOptions(ctx context.Context) (EmployeeOptions, error)
	GetByID(ctx context.Context, id int64) (domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (domain.Employee, error)
	Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (domain.Employee, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	req = normalize(req)
	l.Debug("create employee requested",
		zap.String("email", req.Email),
		zap.String("department", req.Department.String()),
	)
	if err := validate(req); err != nil {
		return domain.Employee{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create employee begin tx failed", zap.Error(err))
		return domain.Employee{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	dept, err := qtx.ResolveDepartment(ctx, req.Department.String())
	if err != nil {
		l.Error("create employee resolve department failed", zap.Error(err))
		return domain.Employee{}, mapRepositoryError(err)
	}

	empl := &Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Position:  req.Position,
	}
	if dept != nil {
		empl.DepartmentID = &dept.ID
	}

	if err := qtx.Create(ctx, empl); err != nil {
		l.Error("create employee persist failed", zap.Error(err))
		return domain.Employee{}, mapRepositoryError(err)
	}
	empl.Department = dept

	if err := s.queueEvent(ctx, tx, events.EmployeeCreated, *empl); err != nil {
		return domain.Employee{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("commit failed", zap.Error(err))
		return domain.Employee{}, err
	}

	s.invalidateCaches(ctx)
	l.Info("create employee success",
		zap.Int64("employee_id", empl.ID),
	)

	return mapToDomain(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]domain.Employee, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		l.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToDomainList(empls), nil
}

// GetOptions returns the department and position filter choices. Results
// are cached in Redis and concurrent misses share one database read.
func (s *service) GetOptions(ctx context.Context) (EmployeeOptions, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var opts EmployeeOptions
			if json.Unmarshal([]byte(cached), &opts) == nil {
				return opts, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		depts, positions := listing.Facets(mapToDomainList(empls))
		opts := EmployeeOptions{Departments: depts, Positions: positions}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(opts); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, optionsTTL).Err(); err != nil {
					l.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}

		return opts, nil
	})
	if err != nil {
		return EmployeeOptions{}, err
	}

	return v.(EmployeeOptions), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (domain.Employee, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("get employee by id requested", zap.Int64("employee_id", id))
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		l.Warn("get employee by id failed", zap.Int64("employee_id", id), zap.Error(err))
		return domain.Employee{}, mapRepositoryError(err)
	}

	return mapToDomain(*empl), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (domain.Employee, error) {
	empl, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.Employee{}, mapRepositoryError(err)
	}
	return mapToDomain(*empl), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (domain.Employee, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	req = normalize(req)
	l.Debug("update employee requested",
		zap.Int64("employee_id", id),
	)
	if err := validate(req); err != nil {
		return domain.Employee{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("update employee begin tx failed", zap.Error(err))
		return domain.Employee{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		l.Warn("update employee fetch existing failed", zap.Int64("employee_id", id), zap.Error(err))
		return domain.Employee{}, mapRepositoryError(err)
	}

	dept, err := qtx.ResolveDepartment(ctx, req.Department.String())
	if err != nil {
		l.Error("update employee resolve department failed", zap.Error(err))
		return domain.Employee{}, mapRepositoryError(err)
	}

	empl.FirstName = req.FirstName
	empl.LastName = req.LastName
	empl.Email = req.Email
	empl.Position = req.Position
	empl.DepartmentID = nil
	if dept != nil {
		empl.DepartmentID = &dept.ID
	}

	if err := qtx.Update(ctx, empl); err != nil {
		l.Error("update employee persist failed", zap.Error(err))
		return domain.Employee{}, mapRepositoryError(err)
	}
	empl.Department = dept

	if err := s.queueEvent(ctx, tx, events.EmployeeUpdated, *empl); err != nil {
		return domain.Employee{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("update employee commit failed", zap.Error(err))
		return domain.Employee{}, err
	}

	s.invalidateCaches(ctx)
	l.Info("update employee success", zap.Int64("employee_id", id))

	return mapToDomain(*empl), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("delete employee requested", zap.Int64("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		l.Warn("delete employee failed", zap.Int64("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.queueEvent(ctx, tx, events.EmployeeDeleted, Employee{ID: id}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateCaches(ctx)
	l.Info("delete employee success", zap.Int64("employee_id", id))
	return nil
}

func (s *service) queueEvent(ctx context.Context, tx *sql.Tx, eventType string, empl Employee) error {
	l := contextutil.GetLogger(ctx, s.logger)
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)

	event, err := kafka.NewEvent(rid, "employee", strconv.FormatInt(empl.ID, 10), events.LifecycleTopic, eventType,
		events.EmployeeEvent{
			EventType:  eventType,
			RequestID:  rid,
			EmployeeID: empl.ID,
			Email:      empl.Email,
			Department: departmentName(empl),
			OccurredAt: time.Now().UTC(),
		})
	if err != nil {
		l.Error("marshal event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		l.Error("employee outbox persist failed",
			zap.String("event_type", eventType),
			zap.Int64("employee_id", empl.ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// invalidateCaches drops the filter options and the department list, whose
// employee counts change with every employee mutation.
func (s *service) invalidateCaches(ctx context.Context) {
	l := contextutil.GetLogger(ctx, s.logger)
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey, department.DepartmentsCacheKey).Err(); err != nil {
		l.Error("failed to invalidate employee caches", zap.Error(err))
	}
}

func normalize(req CreateEmployeeRequest) CreateEmployeeRequest {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Position = strings.TrimSpace(req.Position)
	req.Department = domain.DepartmentName(strings.TrimSpace(req.Department.String()))
	return req
}

func validate(req CreateEmployeeRequest) error {
	if req.FirstName == "" {
		return employeeerrors.ErrFirstNameRequired
	}
	if req.Email == "" {
		return employeeerrors.ErrEmailRequired
	}
	if !domain.ValidEmail(req.Email) {
		return employeeerrors.ErrInvalidEmail
	}
	return nil
}

func departmentName(empl Employee) string {
	if empl.Department == nil {
		return ""
	}
	return empl.Department.Name
}

func mapToDomain(empl Employee) domain.Employee {
	return domain.Employee{
		ID:         empl.ID,
		FirstName:  empl.FirstName,
		LastName:   empl.LastName,
		Email:      empl.Email,
		Position:   empl.Position,
		Department: domain.DepartmentName(departmentName(empl)),
		CreatedAt:  empl.CreatedAt,
	}
}

func mapToDomainList(empls []Employee) []domain.Employee {
	res := make([]domain.Employee, len(empls))
	for i, e := range empls {
		res[i] = mapToDomain(e)
	}
	return res
}

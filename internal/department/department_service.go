package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	departmenterrors "go-employee-admin/internal/department/errors"
	"go-employee-admin/internal/events"
	"go-employee-admin/internal/messaging/kafka"
	"go-employee-admin/internal/shared/apperror"
	"go-employee-admin/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DepartmentsCacheKey = "departments:all"

// employeeOptionsKey is the employee filter cache. Department renames and
// deletes change the department facet it holds.
const employeeOptionsKey = "employees:options"

const departmentsTTL = 30 * time.Minute

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id int64) (DepartmentResponse, error)
	Update(ctx context.Context, id int64, req UpdateDepartmentRequest) (DepartmentResponse, error)
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
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
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

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNameRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := ensureUniqueName(ctx, qtx, name, 0); err != nil {
		return DepartmentResponse{}, err
	}

	dept := &Department{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Manager:     strings.TrimSpace(req.Manager),
	}
	if err := qtx.Create(ctx, dept); err != nil {
		l.Error("create department persist failed", zap.String("name", name), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := s.queueEvent(ctx, tx, events.DepartmentCreated, *dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("create department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateCaches(ctx)
	l.Info("create department success",
		zap.Int64("department_id", dept.ID),
	)
	return mapToResponse(*dept, 0), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, DepartmentsCacheKey).Result(); err == nil {
			var res []DepartmentResponse
			if json.Unmarshal([]byte(cached), &res) == nil {
				return res, nil
			}
		}
	}

	v, err, _ := s.sf.Do(DepartmentsCacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			l.Error("get all departments failed", zap.Error(err))
			return nil, mapRepositoryError(err)
		}

		res := mapToListResponse(rows)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(res); err == nil {
				if err := s.rdb.Set(ctx, DepartmentsCacheKey, jsonData, departmentsTTL).Err(); err != nil {
					l.Warn("cache departments failed", zap.Error(err))
				}
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (DepartmentResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		l.Warn("get department by id failed", zap.Int64("department_id", id), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	count, err := s.repo.CountEmployees(ctx, id)
	if err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept, count), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNameRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("update department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := ensureUniqueName(ctx, qtx, name, id); err != nil {
		return DepartmentResponse{}, err
	}

	dept.Name = name
	dept.Description = strings.TrimSpace(req.Description)
	dept.Manager = strings.TrimSpace(req.Manager)

	if err := qtx.Update(ctx, dept); err != nil {
		l.Error("update department persist failed", zap.Int64("department_id", id), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	count, err := qtx.CountEmployees(ctx, id)
	if err != nil {
		return DepartmentResponse{}, err
	}

	if err := s.queueEvent(ctx, tx, events.DepartmentUpdated, *dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("update department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateCaches(ctx)
	l.Info("update department success", zap.Int64("department_id", id))
	return mapToResponse(*dept, count), nil
}

// Delete removes the department. Its employees stay, with no department.
func (s *service) Delete(ctx context.Context, id int64) error {
	l := contextutil.GetLogger(ctx, s.logger)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("delete department begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.DetachEmployees(ctx, id); err != nil {
		l.Error("detach department employees failed", zap.Int64("department_id", id), zap.Error(err))
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.queueEvent(ctx, tx, events.DepartmentDeleted, *dept); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error("delete department commit failed", zap.Error(err))
		return err
	}

	s.invalidateCaches(ctx)
	l.Info("delete department success", zap.Int64("department_id", id))
	return nil
}

func ensureUniqueName(ctx context.Context, repo Repository, name string, excludeID int64) error {
	exists, err := repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.Wrap(
			departmenterrors.ErrDepartmentAlreadyExists,
			apperror.CodeConflict,
			fmt.Sprintf("Department with name '%s' already exists", name),
			http.StatusConflict,
		)
	}
	return nil
}

func (s *service) queueEvent(ctx context.Context, tx *sql.Tx, eventType string, dept Department) error {
	l := contextutil.GetLogger(ctx, s.logger)
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)

	event, err := kafka.NewEvent(rid, "department", strconv.FormatInt(dept.ID, 10), events.LifecycleTopic, eventType,
		events.DepartmentEvent{
			EventType:    eventType,
			RequestID:    rid,
			DepartmentID: dept.ID,
			Name:         dept.Name,
			OccurredAt:   time.Now().UTC(),
		})
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		l.Error("department outbox persist failed",
			zap.String("event_type", eventType),
			zap.Int64("department_id", dept.ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) invalidateCaches(ctx context.Context) {
	l := contextutil.GetLogger(ctx, s.logger)
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DepartmentsCacheKey, employeeOptionsKey).Err(); err != nil {
		l.Error("failed to invalidate department caches", zap.Error(err))
	}
}

func mapToResponse(dept Department, employeeCount int64) DepartmentResponse {
	return DepartmentResponse{
		ID:            dept.ID,
		Name:          dept.Name,
		Description:   dept.Description,
		Manager:       dept.Manager,
		EmployeeCount: employeeCount,
		CreatedAt:     dept.CreatedAt,
		UpdatedAt:     dept.UpdatedAt,
	}
}

func mapToListResponse(rows []DepartmentWithCount) []DepartmentResponse {
	res := make([]DepartmentResponse, len(rows))
	for i, d := range rows {
		res[i] = DepartmentResponse{
			ID:            d.ID,
			Name:          d.Name,
			Description:   d.Description,
			Manager:       d.Manager,
			EmployeeCount: d.EmployeeCount,
			CreatedAt:     d.CreatedAt,
			UpdatedAt:     d.UpdatedAt,
		}
	}
	return res
}

package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-employee-admin/internal/department"
	departmenterrors "go-employee-admin/internal/department/errors"
	departmentMock "go-employee-admin/internal/department/mock"
	"go-employee-admin/internal/events"
	"go-employee-admin/internal/messaging/kafka"
	kafkaMock "go-employee-admin/internal/messaging/kafka/mock"
	"go-employee-admin/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   department.Service
	repo      *departmentMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dbRedis, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := department.NewServiceWithOutbox(db, repo, outboxRepo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		outbox:    outboxRepo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func expectInvalidate(deps *serviceDeps) {
	deps.redismock.ExpectDel(department.DepartmentsCacheKey, "employees:options").SetVal(1)
}

func expectOutbox(t *testing.T, deps *serviceDeps, eventType string) {
	deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
	deps.outbox.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, eventType, e.EventType)
			assert.Equal(t, events.LifecycleTopic, e.Topic)
			assert.Equal(t, "department", e.AggregateType)
			return nil
		})
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal([]department.DepartmentResponse{
			{ID: 1, Name: "HR", EmployeeCount: 2},
			{ID: 2, Name: "IT"},
		})
		deps.redismock.ExpectGet(department.DepartmentsCacheKey).SetVal(string(cached))

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, int64(2), resp[0].EmployeeCount)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss reads the database and fills the cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		rows := []department.DepartmentWithCount{
			{ID: 1, Name: "Management", Manager: "Admin", EmployeeCount: 1},
		}
		body, _ := json.Marshal([]department.DepartmentResponse{
			{ID: 1, Name: "Management", Manager: "Admin", EmployeeCount: 1},
		})

		deps.redismock.ExpectGet(department.DepartmentsCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(rows, nil)
		deps.redismock.ExpectSet(department.DepartmentsCacheKey, body, 30*time.Minute).SetVal("OK")

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Admin", resp[0].Manager)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(department.DepartmentsCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db down"))

		_, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByName(ctx, "Engineering", int64(0)).Return(false, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *department.Department) error {
				assert.Equal(t, "Engineering", d.Name)
				assert.Equal(t, "Builds things", d.Description)
				d.ID = 3
				return nil
			})
		expectOutbox(t, deps, events.DepartmentCreated)
		expectInvalidate(deps)

		resp, err := deps.service.Create(ctx, department.CreateDepartmentRequest{
			Name:        " Engineering ",
			Description: "Builds things",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), resp.ID)
		assert.Zero(t, resp.EmployeeCount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByName(ctx, "HR", int64(0)).Return(true, nil)

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "HR"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentAlreadyExists)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 409, httpErr.Status)
		assert.Equal(t, "Department with name 'HR' already exists", httpErr.Message)
	})

	t.Run("blank name", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "   "})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	t.Run("success with employee count", func(t *testing.T) {
		deps.repo.EXPECT().FindByID(ctx, int64(1)).Return(&department.Department{ID: 1, Name: "HR"}, nil)
		deps.repo.EXPECT().CountEmployees(ctx, int64(1)).Return(int64(4), nil)

		resp, err := deps.service.GetByID(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), resp.EmployeeCount)
	})

	t.Run("not found", func(t *testing.T) {
		deps.repo.EXPECT().FindByID(ctx, int64(8)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, 8)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("rename", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(2)).Return(&department.Department{ID: 2, Name: "IT"}, nil)
		deps.repo.EXPECT().ExistsByName(ctx, "Engineering", int64(2)).Return(false, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.repo.EXPECT().CountEmployees(ctx, int64(2)).Return(int64(5), nil)
		expectOutbox(t, deps, events.DepartmentUpdated)
		expectInvalidate(deps)

		resp, err := deps.service.Update(ctx, 2, department.UpdateDepartmentRequest{Name: "Engineering", Manager: "Ann"})

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.Equal(t, "Ann", resp.Manager)
		assert.Equal(t, int64(5), resp.EmployeeCount)
	})

	t.Run("rename onto an existing name", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(2)).Return(&department.Department{ID: 2, Name: "IT"}, nil)
		deps.repo.EXPECT().ExistsByName(ctx, "HR", int64(2)).Return(true, nil)

		_, err := deps.service.Update(ctx, 2, department.UpdateDepartmentRequest{Name: "HR"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentAlreadyExists)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("detaches employees before deleting", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(2)).Return(&department.Department{ID: 2, Name: "IT"}, nil)
		gomock.InOrder(
			deps.repo.EXPECT().DetachEmployees(ctx, int64(2)).Return(nil),
			deps.repo.EXPECT().Delete(ctx, int64(2)).Return(nil),
		)
		expectOutbox(t, deps, events.DepartmentDeleted)
		expectInvalidate(deps)

		assert.NoError(t, deps.service.Delete(ctx, 2))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(2)).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, 2)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	autherrors "go-employee-admin/internal/auth/errors"
	"go-employee-admin/internal/domain"
	"go-employee-admin/internal/employee"
	employeeerrors "go-employee-admin/internal/employee/errors"
	"go-employee-admin/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email string) (LoginResponse, error)
	Authenticate(ctx context.Context, token string) (domain.Session, error)
	Logout(ctx context.Context, sess domain.Session) error
	Me(ctx context.Context, sess domain.Session) (domain.Employee, error)
	UpdateProfile(ctx context.Context, sess domain.Session, req UpdateProfileRequest) (domain.Employee, error)
}

type service struct {
	repo      Repository
	employees employee.Service
	secret    []byte
	ttl       time.Duration
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	employees employee.Service,
	secret string,
	ttl time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:      repo,
		employees: employees,
		secret:    []byte(secret),
		ttl:       ttl,
		logger:    l,
	}
}

// Login signs an admin in by email alone; there are no passwords.
func (s *service) Login(ctx context.Context, email string) (LoginResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	empl, err := s.employees.GetByEmail(ctx, email)
	if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
		l.Info("login with unknown email", zap.String("email", email))
		return LoginResponse{}, autherrors.ErrUnknownEmail
	}
	if err != nil {
		return LoginResponse{}, err
	}

	sess := domain.Session{
		ID:         uuid.NewString(),
		EmployeeID: empl.ID,
		Email:      empl.Email,
		FirstName:  empl.FirstName,
		LastName:   empl.LastName,
		ExpiresAt:  time.Now().Add(s.ttl).UTC(),
	}

	token, err := s.generateToken(sess)
	if err != nil {
		l.Error("sign session token failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	if err := s.repo.Save(ctx, sess, s.ttl); err != nil {
		l.Error("store session failed", zap.Int64("employee_id", empl.ID), zap.Error(err))
		return LoginResponse{}, err
	}

	l.Info("login success", zap.Int64("employee_id", empl.ID), zap.String("session_id", sess.ID))
	return LoginResponse{Token: token, ExpiresAt: sess.ExpiresAt, Employee: empl}, nil
}

func (s *service) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return domain.Session{}, autherrors.ErrTokenExpired
	}
	if err != nil || !parsed.Valid {
		return domain.Session{}, autherrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Session{}, autherrors.ErrInvalidToken
	}
	sid, _ := claims["sid"].(string)
	employeeID, _ := claims["employee_id"].(float64)
	if sid == "" || employeeID == 0 {
		return domain.Session{}, autherrors.ErrInvalidToken
	}

	sess, err := s.repo.Get(ctx, sid)
	if err != nil {
		return domain.Session{}, err
	}
	if sess.EmployeeID != int64(employeeID) {
		return domain.Session{}, autherrors.ErrInvalidToken
	}
	return sess, nil
}

func (s *service) Logout(ctx context.Context, sess domain.Session) error {
	l := contextutil.GetLogger(ctx, s.logger)
	if err := s.repo.Delete(ctx, sess.ID); err != nil {
		l.Error("delete session failed", zap.String("session_id", sess.ID), zap.Error(err))
		return err
	}
	l.Info("logout success", zap.Int64("employee_id", sess.EmployeeID))
	return nil
}

func (s *service) Me(ctx context.Context, sess domain.Session) (domain.Employee, error) {
	return s.employees.GetByID(ctx, sess.EmployeeID)
}

// UpdateProfile saves the signed-in admin's own record and refreshes the
// stored session so later requests see the new name and email.
func (s *service) UpdateProfile(ctx context.Context, sess domain.Session, req UpdateProfileRequest) (domain.Employee, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	empl, err := s.employees.Update(ctx, sess.EmployeeID, req)
	if err != nil {
		return domain.Employee{}, err
	}

	sess.Email = empl.Email
	sess.FirstName = empl.FirstName
	sess.LastName = empl.LastName
	if ttl := time.Until(sess.ExpiresAt); ttl > 0 {
		if err := s.repo.Save(ctx, sess, ttl); err != nil {
			l.Warn("refresh session snapshot failed", zap.String("session_id", sess.ID), zap.Error(err))
		}
	}

	return empl, nil
}

func (s *service) generateToken(sess domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":         sess.ID,
		"employee_id": sess.EmployeeID,
		"exp":         sess.ExpiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

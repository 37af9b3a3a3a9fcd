package usersrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openpark/parkweb/pkg/adapter/db/postgres"
	"github.com/openpark/parkweb/pkg/core/cerr"
	"github.com/openpark/parkweb/pkg/core/model"
	"gorm.io/gorm"
)

type gUser struct {
	ID           int64 `gorm:"primaryKey"`
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (gu *gUser) TableName() string {
	return "users"
}

func (gu *gUser) Model() (*model.User, error) {
	role, err := model.ParseRole(gu.Role)
	if err != nil {
		return nil, fmt.Errorf("parsing role %q: %w", gu.Role, err)
	}
	return &model.User{
		ID:           gu.ID,
		Username:     gu.Username,
		Email:        gu.Email,
		PasswordHash: gu.PasswordHash,
		Role:         role,
		CreatedAt:    gu.CreatedAt,
	}, nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, u *model.User) (*model.User, error) {
	gdb := q.GORM(ctx)
	gu := &gUser{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role.String(),
	}
	if err := gdb.Create(gu).Error; err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, cerr.Duplicate(fmt.Errorf(
				"username or email is taken: %w", err,
			))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model()
}

func ByID[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.User, error) {
	gdb := q.GORM(ctx)
	var gu gUser
	if err := gdb.Where("id=?", id).Take(&gu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cerr.NotFound(fmt.Errorf("user %d: %w", id, err))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model()
}

func ByUsername[Q postgres.Queryer](ctx context.Context, q Q, username string) (*model.User, error) {
	gdb := q.GORM(ctx)
	var gu gUser
	err := gdb.Where("username=?", username).Take(&gu).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cerr.NotFound(fmt.Errorf(
				"user %q: %w", username, err,
			))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model()
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]model.User, error) {
	gdb := q.GORM(ctx)
	var gus []gUser
	if err := gdb.Order("id").Find(&gus).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	users := make([]model.User, len(gus))
	for i := range gus {
		u, err := gus[i].Model()
		if err != nil {
			return nil, err
		}
		users[i] = *u
	}
	return users, nil
}

package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/sirwalterjones/sessionremind/internal/repository"
)

type messageRepository struct {
	db *sqlx.DB
}

type usageRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func NewUsageRepository(db *sqlx.DB) repository.UsageRepository {
	return &usageRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

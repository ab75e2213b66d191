package user

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getUserByIDQuery = `
		SELECT id, username, email, password, created_at
		FROM users
		WHERE id = $1
	`
	getUserByIdentifierQuery = `
		SELECT id, username, email, password, created_at
		FROM users
		WHERE username = $1 OR email = $1
	`
	getUserByUsernameOrEmailQuery = `
		SELECT id, username, email, password, created_at
		FROM users
		WHERE username = $1 OR email = $2
	`
	insertUserQuery = `
		INSERT INTO users (username, email, password, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	user, err := scanUser(r.db.QueryRow(getUserByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) GetByIdentifier(identifier string) (User, error) {
	user, err := scanUser(r.db.QueryRow(getUserByIdentifierQuery, identifier))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) GetByUsernameOrEmail(username, email string) (User, error) {
	user, err := scanUser(r.db.QueryRow(getUserByUsernameOrEmailQuery, username, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) Create(user User) (User, error) {
	err := r.db.QueryRow(insertUserQuery, user.Username, user.Email, user.Password, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		// backstop for the registration race: the unique indexes on
		// username/email reject what the duplicate probe missed
		if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
			return User{}, ErrExists
		}
		return User{}, err
	}
	return user, nil
}

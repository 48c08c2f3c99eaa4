package account

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"animetrack/pkg/database"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsAdmin reports whether the role grants catalog curation rights.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

type Account struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	ErrNotFound   = errors.New("account not found")
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a caller cannot probe which addresses are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const accountCols = `id, name, email, password_hash, role, created_at`

func Create(db *sql.DB, name, email, password string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	res, err := db.Exec(`INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`,
		name, email, string(hash))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return Account{}, ErrEmailTaken
		}
		return Account{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Account{}, err
	}
	return GetByID(db, id)
}

func GetByID(db *sql.DB, id int64) (Account, error) {
	return scanOne(db.QueryRow(`SELECT `+accountCols+` FROM users WHERE id = ?`, id))
}

func GetByEmail(db *sql.DB, email string) (Account, error) {
	return scanOne(db.QueryRow(`SELECT `+accountCols+` FROM users WHERE email = ?`, email))
}

// Authenticate verifies an email/password pair against the stored hash.
func Authenticate(db *sql.DB, email, password string) (Account, error) {
	a, err := GetByEmail(db, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return Account{}, ErrInvalidCredentials
	}
	return a, nil
}

// ProfilePatch carries the updatable profile fields. A nil field is left
// unchanged; there is no way to clear a field through a patch.
type ProfilePatch struct {
	Name  *string
	Email *string
}

func UpdateProfile(db *sql.DB, id int64, p ProfilePatch) (Account, error) {
	if _, err := GetByID(db, id); err != nil {
		return Account{}, err
	}

	sets := []string{}
	args := []any{}
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *p.Email)
	}
	if len(sets) == 0 {
		return GetByID(db, id)
	}

	args = append(args, id)
	if _, err := db.Exec(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		if database.IsUniqueViolation(err) {
			return Account{}, ErrEmailTaken
		}
		return Account{}, err
	}
	return GetByID(db, id)
}

func scanOne(row *sql.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}
	return a, nil
}

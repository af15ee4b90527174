package pg

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"board/internal/modules/auth/domain"
)

type UserRepo struct{ db *pgxpool.Pool }

func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

const userCols = `id, email, phone, first_name, last_name, role, password_hash,
       email_confirmed, phone_confirmed, is_blocked, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Phone, &u.FirstName, &u.LastName, &u.Role,
		&u.PasswordHash, &u.EmailConfirmed, &u.PhoneConfirmed, &u.IsBlocked,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(p domain.CreateUserParams) (*domain.User, error) {
	q := `
INSERT INTO users (email, phone, first_name, last_name, role, password_hash)
VALUES (LOWER($1), $2, $3, $4, $5, $6)
RETURNING ` + userCols
	row := r.db.QueryRow(context.Background(), q,
		p.Email, p.Phone, p.FirstName, p.LastName, p.Role, p.PasswordHash)
	return scanUser(row)
}

func (r *UserRepo) GetByID(id string) (*domain.User, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+userCols+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (r *UserRepo) GetByEmail(email string) (*domain.User, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+userCols+` FROM users WHERE email = LOWER($1)`, strings.TrimSpace(email))
	return scanUser(row)
}

func (r *UserRepo) ExistsByEmail(email string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM users WHERE email=LOWER($1))`, email).Scan(&ok)
	return ok, err
}

func (r *UserRepo) ConfirmEmail(userID string) error {
	_, err := r.db.Exec(context.Background(),
		`UPDATE users SET email_confirmed=true, updated_at=now() WHERE id=$1`, userID)
	return err
}

func (r *UserRepo) ConfirmPhone(userID string) error {
	_, err := r.db.Exec(context.Background(),
		`UPDATE users SET phone_confirmed=true, updated_at=now() WHERE id=$1`, userID)
	return err
}

func (r *UserRepo) UpdateProfile(userID string, firstName, lastName, phone *string) error {
	q := `UPDATE users SET
	        first_name = COALESCE($2, first_name),
	        last_name  = COALESCE($3, last_name),
	        phone      = COALESCE($4, phone),
	        updated_at = now()
	      WHERE id=$1`
	_, err := r.db.Exec(context.Background(), q, userID, firstName, lastName, phone)
	return err
}

func (r *UserRepo) UpdatePassword(userID string, newHash string) error {
	_, err := r.db.Exec(context.Background(),
		`UPDATE users SET password_hash=$2, updated_at=now() WHERE id=$1`, userID, newHash)
	return err
}

func (r *UserRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM users WHERE id=$1`, id)
	return err
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, company_id, telegram_id, name, role, status, created_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.CompanyID, &u.TelegramID, &u.Name, &u.Role, &u.Status, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, telegram_id, name, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.CompanyID, user.TelegramID, user.Name, user.Role, user.Status, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("TELEGRAM_ALREADY_LINKED", "el usuario de Telegram ya pertenece a la empresa")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !isUUID(id) {
		return nil, nil
	}
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByTelegramID obtiene el usuario vinculado a un chat de Telegram dentro de la empresa.
func (r *UserRepo) GetByTelegramID(ctx context.Context, companyID string, telegramID int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 AND telegram_id = $2`, companyID, telegramID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}
	return u, nil
}

// ListByCompany lista usuarios de la empresa con paginación.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	return r.list(ctx,
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
}

// ListByRole usuarios de la empresa con un rol dado.
func (r *UserRepo) ListByRole(ctx context.Context, companyID, role string) ([]*entity.User, error) {
	return r.list(ctx,
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 AND role = $2 ORDER BY created_at, id`,
		companyID, role)
}

func (r *UserRepo) list(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

var _ repository.CredentialRepository = (*CredentialRepo)(nil)

// CredentialRepo credenciales web (usuario/contraseña).
type CredentialRepo struct {
	q Querier
}

// NewCredentialRepository construye el adaptador de credenciales.
func NewCredentialRepository(q Querier) *CredentialRepo {
	return &CredentialRepo{q: q}
}

// Create falla con domain.ErrUsernameTaken si el username ya existe.
func (r *CredentialRepo) Create(ctx context.Context, c *entity.WebCredential) error {
	query := `
		INSERT INTO web_credentials (id, company_id, user_id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.CompanyID, c.UserID, c.Username, c.PasswordHash, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (r *CredentialRepo) GetByUsername(ctx context.Context, username string) (*entity.WebCredential, error) {
	var c entity.WebCredential
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, user_id, username, password_hash, created_at
		FROM web_credentials WHERE username = $1`, username,
	).Scan(&c.ID, &c.CompanyID, &c.UserID, &c.Username, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return &c, nil
}

var _ repository.InviteRepository = (*InviteRepo)(nil)

// InviteRepo códigos de invitación.
type InviteRepo struct {
	q Querier
}

// NewInviteRepository construye el adaptador de invitaciones.
func NewInviteRepository(q Querier) *InviteRepo {
	return &InviteRepo{q: q}
}

func (r *InviteRepo) Create(ctx context.Context, i *entity.Invite) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invites (code, company_id, role_default, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		i.Code, i.CompanyID, i.RoleDefault, i.ExpiresAt, i.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("INVITE_CODE_TAKEN", "código de invitación duplicado")
		}
		return fmt.Errorf("insert invite: %w", err)
	}
	return nil
}

func (r *InviteRepo) GetByCode(ctx context.Context, code string) (*entity.Invite, error) {
	var i entity.Invite
	err := r.q.QueryRow(ctx, `
		SELECT code, company_id, role_default, expires_at, created_at
		FROM invites WHERE code = $1`, code,
	).Scan(&i.Code, &i.CompanyID, &i.RoleDefault, &i.ExpiresAt, &i.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}
	return &i, nil
}

func (r *InviteRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Invite, error) {
	rows, err := r.q.Query(ctx, `
		SELECT code, company_id, role_default, expires_at, created_at
		FROM invites WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invite
	for rows.Next() {
		var i entity.Invite
		if err := rows.Scan(&i.Code, &i.CompanyID, &i.RoleDefault, &i.ExpiresAt, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invite: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

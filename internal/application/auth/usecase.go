package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/application/usecase"
	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
	"github.com/jhoicas/staffops-api/pkg/jwt"
)

// DefaultLocationName nombre del primer punto de venta si el onboarding no indica otro.
const DefaultLocationName = "Punto principal"

// BotHint texto devuelto al dueño tras el alta.
const BotHint = "Comparte el código de invitación con tu equipo: lo ingresan en el bot de Telegram."

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Repos puertos de persistencia que usa el onboarding.
type Repos struct {
	Companies   repository.CompanyRepository
	Locations   repository.LocationRepository
	Users       repository.UserRepository
	Credentials repository.CredentialRepository
	Invites     repository.InviteRepository
}

// AuthUseCase casos de uso de alta de empresa, canje de invitaciones y login web.
type AuthUseCase struct {
	repos  Repos
	jwtCfg JWTConfig
	clock  ports.Clock
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(repos Repos, jwtCfg JWTConfig, clock ports.Clock) *AuthUseCase {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &AuthUseCase{repos: repos, jwtCfg: jwtCfg, clock: clock}
}

// OnboardOwner crea empresa, punto de venta (salvo SkipLocation), dueño, credencial web e invitación staff.
// Devuelve domain.ErrUsernameTaken si el usuario web ya existe.
func (uc *AuthUseCase) OnboardOwner(ctx context.Context, in dto.OwnerOnboardingRequest) (*dto.OwnerOnboardingResponse, error) {
	username := strings.TrimSpace(in.Username)
	existing, err := uc.repos.Credentials.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = entity.DefaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, domain.ErrInvalidTimezone
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	company := &entity.Company{ID: uuid.New().String(), Name: in.CompanyName, Timezone: tz, CreatedAt: now}
	if err := uc.repos.Companies.Create(ctx, company); err != nil {
		return nil, err
	}
	out := &dto.OwnerOnboardingResponse{CompanyID: company.ID, BotHint: BotHint}

	if !in.SkipLocation {
		name := strings.TrimSpace(in.LocationName)
		if name == "" {
			name = DefaultLocationName
		}
		loc := &entity.Location{ID: uuid.New().String(), CompanyID: company.ID, Name: name, CreatedAt: now}
		if err := uc.repos.Locations.Create(ctx, loc); err != nil {
			return nil, err
		}
		out.LocationID = loc.ID
	}

	owner := &entity.User{
		ID:         uuid.New().String(),
		CompanyID:  company.ID,
		TelegramID: in.TelegramID,
		Name:       in.OwnerName,
		Role:       entity.RoleOwner,
		Status:     entity.UserStatusActive,
		CreatedAt:  now,
	}
	if err := uc.repos.Users.Create(ctx, owner); err != nil {
		return nil, err
	}
	out.OwnerUserID = owner.ID

	cred := &entity.WebCredential{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		UserID:       owner.ID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if err := uc.repos.Credentials.Create(ctx, cred); err != nil {
		return nil, err
	}
	out.CredentialID = cred.ID

	invite := usecase.NewInvite(company.ID, entity.RoleStaff, nil, now)
	if err := uc.repos.Invites.Create(ctx, invite); err != nil {
		return nil, err
	}
	out.InviteCode = invite.Code
	return out, nil
}

// RedeemInvite vincula un usuario de Telegram a la empresa de la invitación.
// Si ya existe un usuario con ese telegram_id en la empresa, lo reutiliza.
func (uc *AuthUseCase) RedeemInvite(ctx context.Context, in dto.InviteRedeemRequest) (*dto.InviteRedeemResponse, error) {
	inv, err := uc.repos.Invites.GetByCode(ctx, strings.TrimSpace(in.Code))
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInviteNotFound
	}
	now := uc.clock.Now()
	if inv.Expired(now) {
		return nil, domain.ErrInviteExpired
	}
	company, err := uc.repos.Companies.GetByID(ctx, inv.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	user, err := uc.repos.Users.GetByTelegramID(ctx, company.ID, in.TelegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		tgID := in.TelegramID
		user = &entity.User{
			ID:         uuid.New().String(),
			CompanyID:  company.ID,
			TelegramID: &tgID,
			Name:       in.Name,
			Role:       inv.RoleDefault,
			Status:     entity.UserStatusActive,
			CreatedAt:  now,
		}
		if err := uc.repos.Users.Create(ctx, user); err != nil {
			return nil, err
		}
	}
	return &dto.InviteRedeemResponse{
		UserID:      user.ID,
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Role:        user.Role,
	}, nil
}

// Login verifica usuario/contraseña web y emite un JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	cred, err := uc.repos.Credentials.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	user, err := uc.repos.Users.GetByID(ctx, cred.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:         token,
		UserID:        user.ID,
		CompanyID:     user.CompanyID,
		Role:          user.Role,
		Authenticated: true,
	}, nil
}

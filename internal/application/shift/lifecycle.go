// Package shift orquesta el ciclo de vida de los turnos: apertura, cierre y
// vencimiento perezoso, aplicando la política de la empresa y el control de tests.
package shift

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
	shiftrules "github.com/jhoicas/staffops-api/internal/domain/shift"
)

const tracerName = "github.com/jhoicas/staffops-api/internal/application/shift"

// Deps dependencias del caso de uso.
type Deps struct {
	Tx         TxRunner
	Shifts     repository.ShiftRepository
	Companies  repository.CompanyRepository
	Users      repository.UserRepository
	Locations  repository.LocationRepository
	Policies   PolicyResolver
	Compliance ComplianceChecker
	Clock      ports.Clock
	Logger     zerolog.Logger
}

// LifecycleUseCase abre, cierra y lista turnos.
type LifecycleUseCase struct {
	Deps
	tracer trace.Tracer
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(d Deps) *LifecycleUseCase {
	if d.Clock == nil {
		d.Clock = ports.SystemClock{}
	}
	return &LifecycleUseCase{Deps: d, tracer: otel.Tracer(tracerName)}
}

// OpenInput entrada de apertura ya asociada a la empresa.
type OpenInput struct {
	CompanyID  string
	LocationID string
	UserID     string
	Evidence   shiftrules.OpenEvidence
}

// CloseInput entrada de cierre ya asociada a la empresa.
type CloseInput struct {
	CompanyID string
	ShiftID   string
	Evidence  shiftrules.CloseEvidence
}

// OpenFromRequest adapta el request HTTP a Open.
func (uc *LifecycleUseCase) OpenFromRequest(ctx context.Context, companyID string, in dto.OpenShiftRequest) (*dto.ShiftResponse, error) {
	return uc.Open(ctx, OpenInput{
		CompanyID:  companyID,
		LocationID: in.LocationID,
		UserID:     in.UserID,
		Evidence: shiftrules.OpenEvidence{
			Checklist: in.OpenChecklist,
			PhotoURL:  in.OpenPhotoURL,
			Cash:      entity.CashAmountFrom(in.CashOpenAmount),
		},
	})
}

// CloseFromRequest adapta el request HTTP a Close.
func (uc *LifecycleUseCase) CloseFromRequest(ctx context.Context, companyID, shiftID string, in dto.CloseShiftRequest) (*dto.ShiftResponse, error) {
	return uc.Close(ctx, CloseInput{
		CompanyID: companyID,
		ShiftID:   shiftID,
		Evidence: shiftrules.CloseEvidence{
			Checklist:      in.CloseChecklist,
			PhotoURL:       in.ClosePhotoURL,
			Cash:           entity.CashAmountFrom(in.CashCloseAmount),
			WriteOffReason: in.WriteOffReason,
			Notes:          in.Notes,
		},
	})
}

// Open abre un turno. La primera condición incumplida determina el error:
// empresa, política (checklist, foto, caja), usuario, punto de venta y por último turno abierto existente.
func (uc *LifecycleUseCase) Open(ctx context.Context, in OpenInput) (_ *dto.ShiftResponse, err error) {
	ctx, span := uc.tracer.Start(ctx, "shift.open", trace.WithAttributes(
		attribute.String("company.id", in.CompanyID),
		attribute.String("user.id", in.UserID),
	))
	defer func() { endSpan(span, err) }()

	if err := uc.requireCompany(ctx, in.CompanyID); err != nil {
		return nil, err
	}
	policy, err := uc.Policies.Resolve(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := shiftrules.ValidateOpen(policy, in.Evidence); err != nil {
		return nil, err
	}
	user, err := uc.Users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != in.CompanyID {
		return nil, domain.ErrUserNotFound
	}
	location, err := uc.Locations.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil || location.CompanyID != in.CompanyID {
		return nil, domain.ErrLocationNotFound
	}

	now := uc.Clock.Now()
	s := &entity.Shift{
		ID:              uuid.New().String(),
		CompanyID:       in.CompanyID,
		LocationID:      in.LocationID,
		UserID:          in.UserID,
		StartAt:         now,
		Status:          entity.ShiftOpen,
		CloseDeadlineAt: now.Add(policy.CloseDeadline()),
		OpenData: entity.ShiftOpenData{
			Checklist: append([]string(nil), in.Evidence.Checklist...),
			PhotoURL:  in.Evidence.PhotoURL,
		},
	}
	if in.Evidence.Cash.Supplied {
		s.CashLogs = []entity.CashLog{{Type: entity.CashLogOpen, Amount: in.Evidence.Cash.Value, CreatedAt: now}}
	}

	err = uc.Tx.RunShift(ctx, LockKey(in.CompanyID, in.UserID), func(shifts repository.ShiftRepository) error {
		open, err := shifts.FindOpenByUser(ctx, in.CompanyID, in.UserID)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.ErrShiftAlreadyOpen
		}
		return shifts.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("shift.id", s.ID))
	uc.Logger.Info().
		Str("company_id", s.CompanyID).
		Str("shift_id", s.ID).
		Str("user_id", s.UserID).
		Time("close_deadline_at", s.CloseDeadlineAt).
		Msg("turno abierto")
	return toShiftResponse(s), nil
}

// Close cierra un turno abierto. Si el plazo venció, el turno queda EXPIRED de forma
// persistente y la llamada falla con domain.ErrShiftExpired.
func (uc *LifecycleUseCase) Close(ctx context.Context, in CloseInput) (_ *dto.ShiftResponse, err error) {
	ctx, span := uc.tracer.Start(ctx, "shift.close", trace.WithAttributes(
		attribute.String("company.id", in.CompanyID),
		attribute.String("shift.id", in.ShiftID),
	))
	defer func() { endSpan(span, err) }()

	if err := uc.requireCompany(ctx, in.CompanyID); err != nil {
		return nil, err
	}
	policy, err := uc.Policies.Resolve(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	// Lectura previa sin bloqueo: solo para conocer la clave de serialización del usuario.
	current, err := uc.Shifts.GetByID(ctx, in.ShiftID)
	if err != nil {
		return nil, err
	}
	if current == nil || current.CompanyID != in.CompanyID {
		return nil, domain.ErrShiftNotFound
	}

	var (
		closed  *entity.Shift
		expired bool
	)
	err = uc.Tx.RunShift(ctx, LockKey(current.CompanyID, current.UserID), func(shifts repository.ShiftRepository) error {
		s, err := shifts.GetForUpdate(ctx, in.ShiftID)
		if err != nil {
			return err
		}
		if s == nil || s.CompanyID != in.CompanyID {
			return domain.ErrShiftNotFound
		}
		if !s.IsOpen() {
			return domain.ErrShiftNotOpen
		}
		now := uc.Clock.Now()
		if s.PastDeadline(now) {
			s.Expire(now)
			if err := shifts.Update(ctx, s); err != nil {
				return err
			}
			// La transacción se confirma: el vencimiento queda registrado aunque el cierre falle.
			expired = true
			closed = s
			return nil
		}
		if policy.TestsBlockShiftClosure {
			ok, err := uc.Compliance.IsCompliant(ctx, s.CompanyID, s.UserID)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrMonthlyTestOverdue
			}
		}
		if err := shiftrules.ValidateClose(policy, in.Evidence); err != nil {
			return err
		}
		s.Close(now, in.Evidence.CloseData(), in.Evidence.Cash)
		if err := shifts.Update(ctx, s); err != nil {
			return err
		}
		closed = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		uc.Logger.Info().Str("company_id", closed.CompanyID).Str("shift_id", closed.ID).Msg("turno vencido al intentar cerrar")
		return nil, domain.ErrShiftExpired
	}
	uc.Logger.Info().Str("company_id", closed.CompanyID).Str("shift_id", closed.ID).Msg("turno cerrado")
	return toShiftResponse(closed), nil
}

// List devuelve los turnos de la empresa (más recientes primero).
func (uc *LifecycleUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ShiftListResponse, error) {
	if err := uc.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.Shifts.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShiftResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toShiftResponse(s))
	}
	return &dto.ShiftListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Get devuelve un turno de la empresa.
func (uc *LifecycleUseCase) Get(ctx context.Context, companyID, shiftID string) (*dto.ShiftResponse, error) {
	if err := uc.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}
	s, err := uc.Shifts.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.CompanyID != companyID {
		return nil, domain.ErrShiftNotFound
	}
	return toShiftResponse(s), nil
}

func (uc *LifecycleUseCase) requireCompany(ctx context.Context, companyID string) error {
	c, err := uc.Companies.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		var de *domain.Error
		if errors.As(err, &de) {
			span.SetAttributes(attribute.String("error.code", de.Code))
		} else {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}

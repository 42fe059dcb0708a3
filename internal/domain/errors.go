package domain

import "errors"

// Clases de error de dominio (sin dependencias externas).
// Los errores concretos envuelven una de estas clases y se comparan con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInvalidState = errors.New("estado inválido")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Error error de dominio con código estable para la API.
type Error struct {
	kind error
	Code string
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Unwrap permite errors.Is(err, domain.ErrNotFound) y similares.
func (e *Error) Unwrap() error { return e.kind }

// Kind devuelve la clase del error.
func (e *Error) Kind() error { return e.kind }

func newError(kind error, code, msg string) *Error {
	return &Error{kind: kind, Code: code, Msg: msg}
}

// NotFound construye un error de recurso inexistente.
func NotFound(code, msg string) *Error { return newError(ErrNotFound, code, msg) }

// Validation construye un error de validación.
func Validation(code, msg string) *Error { return newError(ErrInvalidInput, code, msg) }

// Conflict construye un error de conflicto.
func Conflict(code, msg string) *Error { return newError(ErrConflict, code, msg) }

// InvalidState construye un error de transición no permitida.
func InvalidState(code, msg string) *Error { return newError(ErrInvalidState, code, msg) }

var (
	ErrCompanyNotFound  = NotFound("COMPANY_NOT_FOUND", "empresa no encontrada")
	ErrUserNotFound     = NotFound("USER_NOT_FOUND", "usuario no encontrado")
	ErrLocationNotFound = NotFound("LOCATION_NOT_FOUND", "punto de venta no encontrado")
	ErrShiftNotFound    = NotFound("SHIFT_NOT_FOUND", "turno no encontrado")
	ErrQuizNotFound     = NotFound("QUIZ_NOT_FOUND", "test no encontrado")
	ErrInviteNotFound   = NotFound("INVITE_NOT_FOUND", "invitación no encontrada")
	ErrSectionNotFound  = NotFound("SECTION_NOT_FOUND", "sección no encontrada")
	ErrIncidentNotFound = NotFound("INCIDENT_NOT_FOUND", "incidente no encontrado")

	ErrOpeningChecklistRequired = Validation("OPENING_CHECKLIST_REQUIRED", "el checklist de apertura es obligatorio")
	ErrOpenPhotoRequired        = Validation("OPEN_PHOTO_REQUIRED", "la foto de apertura es obligatoria")
	ErrCashOpenRequired         = Validation("CASH_OPEN_REQUIRED", "el monto de caja de apertura es obligatorio")
	ErrClosingChecklistRequired = Validation("CLOSING_CHECKLIST_REQUIRED", "el checklist de cierre es obligatorio")
	ErrClosePhotoRequired       = Validation("CLOSE_PHOTO_REQUIRED", "la foto de cierre es obligatoria")
	ErrCashCloseRequired        = Validation("CASH_CLOSE_REQUIRED", "el monto de caja de cierre es obligatorio")
	ErrMonthlyTestOverdue       = Validation("MONTHLY_TEST_OVERDUE", "el test mensual está vencido")
	ErrInvalidAnswerIndex       = Validation("INVALID_ANSWER_INDEX", "índice de respuesta fuera de rango")
	ErrInvalidTimeRange         = Validation("INVALID_TIME_RANGE", "end_at debe ser posterior a start_at")
	ErrInvalidTimezone          = Validation("INVALID_TIMEZONE", "zona horaria desconocida")

	ErrShiftAlreadyOpen = Conflict("SHIFT_ALREADY_OPEN", "el usuario ya tiene un turno abierto")
	ErrUsernameTaken    = Conflict("USERNAME_TAKEN", "el nombre de usuario ya existe")

	ErrShiftNotOpen  = InvalidState("SHIFT_NOT_OPEN", "el turno no está abierto")
	ErrShiftExpired  = InvalidState("SHIFT_EXPIRED", "el plazo de cierre del turno venció")
	ErrInviteExpired = InvalidState("INVITE_EXPIRED", "la invitación está vencida")

	ErrInvalidCredentials = newError(ErrUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas")

	ErrActingForOtherUser = newError(ErrForbidden, "FORBIDDEN_USER", "un empleado solo puede operar sobre sí mismo")
)

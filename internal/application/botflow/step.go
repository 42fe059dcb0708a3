// Package botflow conversación de onboarding del bot de Telegram: pasos, sesión y transiciones.
package botflow

// Role rol conversacional (distinto del rol del usuario en la empresa).
type Role string

const (
	RoleNone  Role = ""
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

// Step paso de la conversación. Cada paso declara el rol al que pertenece.
type Step int

const (
	StepNone Step = iota
	StepChooseRole
	StepOwnerCompany
	StepOwnerName
	StepOwnerUsername
	StepOwnerPassword
	StepOwnerTimezone
	StepOwnerLocation
	StepStaffInvite
	StepStaffName
	StepStaffMenu
	StepStaffProfile
	StepStaffRecipes
)

type stepInfo struct {
	name string
	role Role
}

var steps = map[Step]stepInfo{
	StepNone:          {"", RoleNone},
	StepChooseRole:    {"choose_role", RoleNone},
	StepOwnerCompany:  {"owner_company", RoleOwner},
	StepOwnerName:     {"owner_name", RoleOwner},
	StepOwnerUsername: {"owner_username", RoleOwner},
	StepOwnerPassword: {"owner_password", RoleOwner},
	StepOwnerTimezone: {"owner_timezone", RoleOwner},
	StepOwnerLocation: {"owner_location", RoleOwner},
	StepStaffInvite:   {"staff_invite", RoleStaff},
	StepStaffName:     {"staff_name", RoleStaff},
	StepStaffMenu:     {"staff_menu", RoleStaff},
	StepStaffProfile:  {"staff_profile", RoleStaff},
	StepStaffRecipes:  {"staff_recipes", RoleStaff},
}

var stepsByName = func() map[string]Step {
	m := make(map[string]Step, len(steps))
	for s, info := range steps {
		m[info.name] = s
	}
	return m
}()

// Role rol asociado al paso.
func (s Step) Role() Role { return steps[s].role }

// String nombre persistido del paso.
func (s Step) String() string { return steps[s].name }

// ParseStep nombres desconocidos equivalen a StepNone.
func ParseStep(name string) Step {
	return stepsByName[name]
}

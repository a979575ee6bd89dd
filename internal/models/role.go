package models

// Role identifies which dashboard a signed-in user may open.
type Role string

const (
	RolePatient    Role = "patient"
	RoleDoctor     Role = "doctor"
	RoleASHAWorker Role = "asha-worker"
)

// Roles lists every role in the order the auth forms offer them.
var Roles = []Role{RoleDoctor, RoleASHAWorker, RolePatient}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleASHAWorker:
		return true
	}
	return false
}

// Label is the human-readable name used in headings and selects.
func (r Role) Label() string {
	switch r {
	case RolePatient:
		return "Patient"
	case RoleDoctor:
		return "Doctor"
	case RoleASHAWorker:
		return "ASHA Worker"
	}
	return string(r)
}

func (r Role) String() string {
	return string(r)
}

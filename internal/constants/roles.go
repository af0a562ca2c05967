package constants

import (
	"database/sql/driver"
	"fmt"
)

// UserRole mirrors the Postgres ENUM 'user_role'
type UserRole string

const (
	RoleAdmin        UserRole = "ADMIN"
	RoleOrganization UserRole = "ORGANIZATION"
	RoleVolunteer    UserRole = "VOLUNTEER"
	RoleBeneficiary  UserRole = "BENEFICIARY"
)

func (r UserRole) String() string { return string(r) }

// ChatSearchPriority is the fixed ordering applied to user-search results in
// the chat operator view: admins first, beneficiaries last.
func (r UserRole) ChatSearchPriority() int {
	switch r {
	case RoleAdmin:
		return 0
	case RoleOrganization:
		return 1
	case RoleVolunteer:
		return 2
	case RoleBeneficiary:
		return 3
	default:
		return 4
	}
}

// Scan implements the sql.Scanner interface
func (r *UserRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = UserRole(v)
	case []byte:
		*r = UserRole(v)
	default:
		return fmt.Errorf("UserRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r UserRole) Value() (driver.Value, error) { return string(r), nil }

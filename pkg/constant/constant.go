package constant

// User types supported by registration. Admin accounts are provisioned
// out-of-band and cannot be requested through the public register endpoint.
const (
	UserTypeAdmin     = "ADMIN"
	UserTypeClient    = "CLIENT"
	UserTypeEditor    = "EDITOR"
	UserTypeMaid      = "MAID"
	UserTypeSeeker    = "SEEKER"
	UserTypeVolunteer = "VOLUNTEER"
)

// DefaultUserType is assigned when registration omits the type field.
const DefaultUserType = UserTypeClient

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

func ValidUserType(t string) bool {
	switch t {
	case UserTypeAdmin, UserTypeClient, UserTypeEditor, UserTypeMaid, UserTypeSeeker, UserTypeVolunteer:
		return true
	}
	return false
}

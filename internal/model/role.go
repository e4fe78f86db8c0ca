package model

// Role 用户角色
type Role string

const (
	RoleUser          Role = "USER"
	RoleSuperReviewer Role = "SUPER_REVIEWER"
	RoleAdmin         Role = "ADMIN"
)

// Roles 全部已知角色
var Roles = []Role{RoleUser, RoleSuperReviewer, RoleAdmin}

// ParseRole 解析角色字符串，未知值返回 false
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, true
	case RoleSuperReviewer:
		return RoleSuperReviewer, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Valid 是否为已知角色
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string {
	return string(r)
}

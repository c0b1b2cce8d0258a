// Package access decides which callers may perform which class of operation on a resource kind.
package access

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// OperationFromMethod maps an HTTP method onto its operation class.
func OperationFromMethod(method string) Operation {
	switch method {
	case http.MethodPost:
		return OpCreate
	case http.MethodPut, http.MethodPatch:
		return OpUpdate
	case http.MethodDelete:
		return OpDelete
	default:
		return OpRead
	}
}

type Resource string

const (
	ResourcePersonalInfo   Resource = "personal_info"
	ResourceSkill          Resource = "skill"
	ResourceExperience     Resource = "experience"
	ResourceProject        Resource = "project"
	ResourceCertification  Resource = "certification"
	ResourceContactMessage Resource = "contact_message"
	ResourceSettings       Resource = "settings"
	// ResourcePortfolio is the assembled public snapshot.
	ResourcePortfolio Resource = "portfolio"
	// ResourceTransfer covers admin import, export and backup.
	ResourceTransfer Resource = "portfolio_transfer"
	// ResourceSession is the caller's own login session.
	ResourceSession Resource = "session"
)

type Requirement int

const (
	Public Requirement = iota
	Authenticated
	Admin
	// Denied blocks the operation for everyone.
	Denied
)

type Principal struct {
	UserID   uuid.UUID
	Username string
	Email    string
	IsAdmin  bool
}

type rule map[Operation]Requirement

func publicReadAdminWrite() rule {
	return rule{OpRead: Public, OpCreate: Admin, OpUpdate: Admin, OpDelete: Admin}
}

var table = map[Resource]rule{
	ResourcePersonalInfo:  publicReadAdminWrite(),
	ResourceSkill:         publicReadAdminWrite(),
	ResourceExperience:    publicReadAdminWrite(),
	ResourceProject:       publicReadAdminWrite(),
	ResourceCertification: publicReadAdminWrite(),
	ResourceSettings:      publicReadAdminWrite(),
	ResourcePortfolio:     {OpRead: Public, OpCreate: Denied, OpUpdate: Denied, OpDelete: Denied},
	ResourceContactMessage: {
		OpRead:   Admin,
		OpCreate: Public,
		OpUpdate: Admin,
		OpDelete: Admin,
	},
	ResourceTransfer: {OpRead: Admin, OpCreate: Admin, OpUpdate: Admin, OpDelete: Admin},
	ResourceSession:  {OpRead: Authenticated, OpCreate: Authenticated, OpUpdate: Denied, OpDelete: Authenticated},
}

// RequirementFor returns Denied for unknown resources or operations.
func RequirementFor(op Operation, res Resource) Requirement {
	r, ok := table[res]
	if !ok {
		return Denied
	}
	req, ok := r[op]
	if !ok {
		return Denied
	}
	return req
}

// May reports whether p may perform op on res. A nil principal is an anonymous caller.
func May(op Operation, res Resource, p *Principal) bool {
	switch RequirementFor(op, res) {
	case Public:
		return true
	case Authenticated:
		return p != nil
	case Admin:
		return p != nil && p.IsAdmin
	default:
		return false
	}
}

// Check is May with an outcome: 401 when a credential is needed but absent, 403 otherwise.
func Check(op Operation, res Resource, p *Principal) error {
	if May(op, res, p) {
		return nil
	}
	req := RequirementFor(op, res)
	if p == nil && req != Denied {
		return apperror.NewAuthRequired(fmt.Sprintf("%s on %s requires authentication", op, res))
	}
	return apperror.NewPermissionDenied(fmt.Sprintf("%s on %s is not allowed for this caller", op, res))
}

package domain

import (
	"fmt"
	"time"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Role is the verified role of an authenticated caller.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleAssessor       Role = "assessor"
	RoleCashier        Role = "cashier"
	RoleClerk          Role = "clerk"
	RoleInspector      Role = "inspector"
	RoleOfficer        Role = "officer"
	RoleFieldCollector Role = "field_collector"
	RoleCitizen        Role = "citizen"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAssessor, RoleCashier, RoleClerk, RoleInspector, RoleOfficer, RoleFieldCollector, RoleCitizen:
		return true
	}
	return false
}

// Action names a guarded operation in the tax demand lifecycle.
type Action string

const (
	ActionManageAssessment Action = "assessment:manage"
	ActionReviewAssessment Action = "assessment:review"
	ActionGenerateDemand   Action = "demand:generate"
	ActionVoidDemand       Action = "demand:void"
	ActionApplyPayment     Action = "payment:apply"
	ActionRecordVisit      Action = "visit:record"
	ActionManageNotice     Action = "notice:manage"
)

var permissions = map[Action][]Role{
	ActionManageAssessment: {RoleAssessor, RoleAdmin},
	ActionReviewAssessment: {RoleAdmin},
	ActionGenerateDemand:   {RoleAdmin, RoleOfficer, RoleClerk},
	ActionVoidDemand:       {RoleAdmin},
	ActionApplyPayment:     {RoleCashier, RoleAdmin, RoleFieldCollector},
	ActionRecordVisit:      {RoleFieldCollector, RoleAdmin},
	ActionManageNotice:     {RoleAdmin, RoleOfficer},
}

// Caller is the verified identity passed explicitly into every service operation.
type Caller struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}

// Can reports whether the caller's role is allowed to perform action.
func (c Caller) Can(action Action) bool {
	if c.UserID == "" {
		return false
	}
	for _, r := range permissions[action] {
		if r == c.Role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// FormatDocumentNumber renders a human-facing document number such as ASMT/2024-25/000042.
func FormatDocumentNumber(prefix, financialYear string, seq int64) string {
	return fmt.Sprintf("%s/%s/%06d", prefix, financialYear, seq)
}

const (
	AssessmentNumberPrefix = "ASMT"
	DemandNumberPrefix     = "DMD"
	ReceiptNumberPrefix    = "RCT"
	NoticeNumberPrefix     = "NTC"
)

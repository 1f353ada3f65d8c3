package partner

import (
	"strings"

	"github.com/comercio/backend/internal/domain/shared"
)

// UbigeoLevel identifies which administrative level a ubigeo row describes
type UbigeoLevel string

const (
	UbigeoLevelDepartment UbigeoLevel = "department"
	UbigeoLevelProvince   UbigeoLevel = "province"
	UbigeoLevelDistrict   UbigeoLevel = "district"
)

// Ubigeo is a row of the Peruvian geographic catalog (INEI coding). It is
// shared reference data, not tenant-scoped. The six-digit code encodes
// department (positions 1-2), province (3-4), and district (5-6); a zero
// pair means the row describes the coarser level.
type Ubigeo struct {
	shared.BaseEntity
	Code       string `gorm:"type:char(6);not null;uniqueIndex"`
	Department string `gorm:"type:varchar(100);not null"`
	Province   string `gorm:"type:varchar(100)"`
	District   string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Ubigeo) TableName() string {
	return "ubigeos"
}

// NewUbigeo creates a ubigeo catalog row
func NewUbigeo(code, department, province, district string) (*Ubigeo, error) {
	if err := validateUbigeoCode(code); err != nil {
		return nil, err
	}
	if strings.TrimSpace(department) == "" {
		return nil, shared.NewValidationError("INVALID_UBIGEO", "Department name cannot be empty")
	}

	return &Ubigeo{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Department: department,
		Province:   province,
		District:   district,
	}, nil
}

// Level returns the administrative level described by the code
func (u *Ubigeo) Level() UbigeoLevel {
	switch {
	case u.Code[2:6] == "0000":
		return UbigeoLevelDepartment
	case u.Code[4:6] == "00":
		return UbigeoLevelProvince
	default:
		return UbigeoLevelDistrict
	}
}

// FullPath returns the human-readable location, coarse to fine, used as the
// default delivery address on generated purchase orders.
func (u *Ubigeo) FullPath() string {
	parts := []string{u.Department}
	if u.Province != "" {
		parts = append(parts, u.Province)
	}
	if u.District != "" {
		parts = append(parts, u.District)
	}
	return strings.Join(parts, ", ")
}

// DepartmentCode returns the two-digit department prefix
func (u *Ubigeo) DepartmentCode() string {
	return u.Code[0:2]
}

func validateUbigeoCode(code string) error {
	if len(code) != 6 {
		return shared.NewValidationError("INVALID_UBIGEO", "Ubigeo code must be 6 digits")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return shared.NewValidationError("INVALID_UBIGEO", "Ubigeo code must contain only digits")
		}
	}
	return nil
}

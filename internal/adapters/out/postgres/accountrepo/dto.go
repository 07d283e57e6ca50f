// Package accountrepo persists accounts with GORM.
package accountrepo

import (
	"time"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AccountDTO is the accounts table row. Capabilities is denormalised from the
// role for reporting queries.
type AccountDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Email        string         `gorm:"size:254;uniqueIndex;not null"`
	DisplayName  string         `gorm:"size:128;not null"`
	Role         string         `gorm:"size:16;not null"`
	Capabilities pq.StringArray `gorm:"type:text[]"`
	PasswordHash string         `gorm:"size:72;not null"`
	CreatedAt    time.Time
}

// TableName overrides GORM's default naming convention.
func (AccountDTO) TableName() string {
	return "accounts"
}

func fromDomain(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:           a.ID().Bytes(),
		Email:        a.Email(),
		DisplayName:  a.DisplayName(),
		Role:         a.Role().String(),
		Capabilities: pq.StringArray(a.Role().Capabilities()),
		PasswordHash: a.PasswordHash(),
	}
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := account.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return account.NewAccount(id, dto.Email, dto.DisplayName, role, dto.PasswordHash)
}

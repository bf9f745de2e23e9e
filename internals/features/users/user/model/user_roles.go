package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRoleModel grants a role to a user. A user holds many roles and acts under one.
type UserRoleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_roles_user_role" json:"userId"`
	RoleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_roles_user_role;index" json:"roleId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (UserRoleModel) TableName() string {
	return "user_roles"
}

func (r *UserRoleModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

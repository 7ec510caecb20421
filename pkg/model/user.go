package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a person or service identity. The security question and its answer
// are set and cleared together.
type User struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	Username           string    `gorm:"column:username;uniqueIndex;not null"`
	RealmID            *string   `gorm:"column:realm_id"`
	SecurityQuestionID *string   `gorm:"column:security_question_id;index"`
	SecurityAnswer     *string   `gorm:"column:security_answer"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`

	LinkedAccounts  []LinkedAccount `gorm:"foreignKey:OwnerID"`
	PlainAttributes []*UPlainAttr   `gorm:"foreignKey:OwnerID"`
	DerAttributes   []*UDerAttr     `gorm:"foreignKey:OwnerID"`
}

func (User) TableName() string {
	return "users"
}

func (*User) OwnerKind() OwnerKind { return OwnerUser }
func (u *User) GetKey() string     { return u.ID }

func (u *User) PlainAttrs() []PlainAttr             { return plainAttrs(u.PlainAttributes) }
func (u *User) AddPlainAttr(attr PlainAttr) error   { return addPlain(u, &u.PlainAttributes, attr) }
func (u *User) RemovePlainAttr(attr PlainAttr) bool { return removePlain(&u.PlainAttributes, attr) }
func (u *User) DerAttrs() []DerAttr                 { return derAttrs(u.DerAttributes) }
func (u *User) AddDerAttr(attr DerAttr) error       { return addDer(u, &u.DerAttributes, attr) }
func (u *User) RemoveDerAttr(attr DerAttr) bool     { return removeDer(&u.DerAttributes, attr) }

// ClearSecurityQuestion drops both the question reference and the answer
func (u *User) ClearSecurityQuestion() {
	u.SecurityQuestionID = nil
	u.SecurityAnswer = nil
}

func (u *User) AfterFind(tx *gorm.DB) error {
	linkPlain(u, u.PlainAttributes)
	linkDer(u, u.DerAttributes)
	return nil
}

// LinkedAccount is an account on an external resource linked to a user
type LinkedAccount struct {
	ID                 string      `gorm:"column:id;primaryKey"`
	OwnerID            string      `gorm:"column:owner_id;index;not null"`
	ResourceID         string      `gorm:"column:resource_id;index"`
	ConnObjectKeyValue string      `gorm:"column:conn_object_key_value"`
	Privileges         []Privilege `gorm:"many2many:linked_account_privileges"`
}

func (LinkedAccount) TableName() string {
	return "linked_accounts"
}

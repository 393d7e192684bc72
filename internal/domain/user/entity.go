package user

import (
	"time"

	"github.com/google/uuid"
)

// User covers authentication plus the membership facet the booking engine
// consumes: whether the user is a member and which plan drives the discount.
type User struct {
	id               uuid.UUID
	email            Email
	passwordHash     string
	name             string
	phone            string
	role             Role
	isMember         bool
	membershipPlanID *uuid.UUID
	membershipStart  *time.Time
	membershipExpiry *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

func NewUser(email Email, passwordHash, name, phone string, role Role) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		phone:        phone,
		role:         role,
	}
}

func ReconstructUser(
	id uuid.UUID,
	email Email,
	passwordHash, name, phone string,
	role Role,
	isMember bool,
	membershipPlanID *uuid.UUID,
	membershipStart, membershipExpiry *time.Time,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:               id,
		email:            email,
		passwordHash:     passwordHash,
		name:             name,
		phone:            phone,
		role:             role,
		isMember:         isMember,
		membershipPlanID: membershipPlanID,
		membershipStart:  membershipStart,
		membershipExpiry: membershipExpiry,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (u *User) Subscribe(planID uuid.UUID, start, expiry time.Time) {
	u.isMember = true
	u.membershipPlanID = &planID
	u.membershipStart = &start
	u.membershipExpiry = &expiry
}

func (u *User) CancelMembership() {
	u.isMember = false
	u.membershipPlanID = nil
}

// HasActiveMembership reports whether the membership discount applies at now.
func (u *User) HasActiveMembership(now time.Time) bool {
	if !u.isMember {
		return false
	}
	if u.membershipExpiry != nil && now.After(*u.membershipExpiry) {
		return false
	}
	return true
}

func (u *User) ID() uuid.UUID                { return u.id }
func (u *User) Email() Email                 { return u.email }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) Name() string                 { return u.name }
func (u *User) Phone() string                { return u.phone }
func (u *User) Role() Role                   { return u.role }
func (u *User) IsMember() bool               { return u.isMember }
func (u *User) MembershipPlanID() *uuid.UUID { return u.membershipPlanID }
func (u *User) MembershipStart() *time.Time  { return u.membershipStart }
func (u *User) MembershipExpiry() *time.Time { return u.membershipExpiry }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

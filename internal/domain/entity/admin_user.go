package entity

import "time"

// AdminRoleAdmin is the default role assigned to seeded back-office accounts.
const AdminRoleAdmin = "admin"

// AdminUser is a back-office operator account. Admin accounts are seeded via
// the adminctl command; there is no self-service signup.
type AdminUser struct {
	ID           string    `json:"id" firestore:"-"`
	Email        string    `json:"email" firestore:"email"`
	Name         string    `json:"name" firestore:"name"`
	PasswordHash string    `json:"-" firestore:"passwordHash"` // bcrypt hash; never serialized to clients.
	Role         string    `json:"role" firestore:"role"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}

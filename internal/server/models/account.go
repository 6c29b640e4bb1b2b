// Package models holds the server-side domain records.
package models

import "time"

// Account is a registered user. Email is the case-sensitive primary key.
// PasswordHash is opaque: it arrives already hashed by the client and is
// only ever compared byte-for-byte.
type Account struct {
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Package access decides whether the caller may see or change a resource.
package access

import "github.com/williamsgomess/seubarriga-api/internal/apperr"

// Caller is the authenticated user a request runs on behalf of.
type Caller struct {
	UserID uint64
}

func Owns(ownerID uint64, c Caller) bool {
	return ownerID != 0 && ownerID == c.UserID
}

// EnsureOwner fails with an authorization error unless c owns the resource.
func EnsureOwner(ownerID uint64, c Caller) error {
	if !Owns(ownerID, c) {
		return apperr.Authorization(apperr.MsgNotOwner)
	}
	return nil
}

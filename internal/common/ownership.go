package common

import "fmt"

// AuthorizeOwner is the single ownership rule applied before any mutation:
// the acting identity must equal the resource owner. Pure comparison on
// canonical ids, no I/O.
func AuthorizeOwner(actingUserID, resourceOwnerID uint64, resource string) error {
	if actingUserID != resourceOwnerID {
		return Forbidden(fmt.Sprintf("you are not allowed to modify this %s", resource))
	}
	return nil
}

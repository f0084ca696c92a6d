// internal/store/store.go
package store

// Keys for locally persisted state. These mirror the browser build's
// localStorage keys so a migrated profile keeps its identity and balance.
const (
	GuestIDKey  = "sareestage_guest_id"
	UserDataKey = "sareestage_userdata_"
	MockUserKey = "sareestage_mock_user"
)

// Store is a minimal key-value persistence seam. The entitlement and auth
// layers only ever talk to this interface, so a server-backed store can be
// substituted later without touching their logic.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

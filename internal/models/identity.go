package models

// Identity is the anonymous credential pair issued by the ZoomDocs API.
// Either both tokens are present or the pair is not trusted at all.
type Identity struct {
	AuthID string `json:"zoomdocs_auth_id"`
	UserID string `json:"zoomdocs_user_id"`
}

// Complete reports whether both tokens are present.
func (i Identity) Complete() bool {
	return i.AuthID != "" && i.UserID != ""
}

package api

// Vehicle is a record as served by the collection resource.
type Vehicle struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Favorite bool   `json:"favorite"`
}

// NewVehicle is the POST body for creating a record. The server assigns the id
// and defaults favorite to false.
type NewVehicle struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
}

// DeleteResult is the body returned by a successful DELETE.
type DeleteResult struct {
	Message string         `json:"message"`
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
}

// Credentials is the POST /login body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the identity returned by POST /login.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

// LoginResult is the body returned by POST /login.
type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}

// FavoriteFilter narrows a list call on the server side. FavoriteAny adds no
// constraint.
type FavoriteFilter int

const (
	FavoriteAny FavoriteFilter = iota
	FavoriteOnly
	FavoriteExcluded
)

func (f FavoriteFilter) queryValue() (string, bool) {
	switch f {
	case FavoriteOnly:
		return "true", true
	case FavoriteExcluded:
		return "false", true
	default:
		return "", false
	}
}

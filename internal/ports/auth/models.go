package auth

// Claims representa la información extraída del token.
// UserID es además el id del dueño (Owner) en el planner.
type Claims struct {
	UserID string
	Email  string
	Name   string
}

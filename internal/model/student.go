package model

// Role identifies which action set an authenticated caller can reach.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Student is one roster entry. The (StudentID, ClassCode) pair is the
// natural login key; inactive students cannot authenticate.
type Student struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	ClassCode string `json:"class_code"`
	Active    bool   `json:"active"`
}

// AuthContext travels inside every request envelope. Token is an opaque
// random string issued at login; in the default trust mode it is not bound
// to any server-side record.
type AuthContext struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Role  Role   `json:"role,omitempty"`
}

// LoginRequest is the payload for the login action. A present Secret selects
// the teacher path; otherwise the roster is consulted.
type LoginRequest struct {
	ID        string `json:"id" validate:"required"`
	ClassCode string `json:"class_code" validate:"required"`
	Secret    string `json:"secret"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

package model

// Code is one pedagogical code from the static reference sheet, managed by
// the teacher out of band.
type Code struct {
	CodeID   string `json:"code_id"`
	Category string `json:"category"`
	Label    string `json:"label"`
	Color    string `json:"color"`
}

// CodesResponse wraps teacher/getCodes.
type CodesResponse struct {
	Codes []Code `json:"codes"`
}

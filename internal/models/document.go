package models

// DocumentRole identifies which side of the comparison an upload belongs to.
type DocumentRole string

const (
	RoleJobDescription DocumentRole = "jd"
	RoleResume         DocumentRole = "cv"
)

// Label is the human readable name used in messages and logs.
func (r DocumentRole) Label() string {
	switch r {
	case RoleJobDescription:
		return "Job Description"
	case RoleResume:
		return "CV"
	default:
		return string(r)
	}
}

// UploadedDocument is a temporary artifact owned by a single request.
type UploadedDocument struct {
	Role             DocumentRole
	Filename         string
	OriginalFileName string
	FilePath         string
	Size             int64
}

type ExtractedText struct {
	Role DocumentRole
	Text string
}

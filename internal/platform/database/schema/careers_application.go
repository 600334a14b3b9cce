package schema

// CareersApplicationTable represents the 'careers.application' table
type CareersApplicationTable struct {
	Table          string
	ID             string
	JobPostID      string
	JobTitle       string
	ApplicantName  string
	ApplicantEmail string
	ApplicantPhone string
	ResumeURL      string
	CoverLetter    string
	Status         string
	ReviewedBy     string
	AppliedAt      string
	UpdatedAt      string
}

// CareersApplication is the schema definition for careers.application
var CareersApplication = CareersApplicationTable{
	Table:          "careers.application",
	ID:             "id",
	JobPostID:      "jobpostid",
	JobTitle:       "jobtitle",
	ApplicantName:  "applicantname",
	ApplicantEmail: "applicantemail",
	ApplicantPhone: "applicantphone",
	ResumeURL:      "resumeurl",
	CoverLetter:    "coverletter",
	Status:         "status",
	ReviewedBy:     "reviewedby",
	AppliedAt:      "appliedat",
	UpdatedAt:      "updatedat",
}

// Columns lists every column in table order.
func (t CareersApplicationTable) Columns() []string {
	return []string{
		t.ID, t.JobPostID, t.JobTitle, t.ApplicantName, t.ApplicantEmail, t.ApplicantPhone,
		t.ResumeURL, t.CoverLetter, t.Status, t.ReviewedBy, t.AppliedAt, t.UpdatedAt,
	}
}

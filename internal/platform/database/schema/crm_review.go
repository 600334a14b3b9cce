package schema

// CRMReviewTable represents the 'crm.review' table
type CRMReviewTable struct {
	Table         string
	ID            string
	Token         string
	ClientName    string
	ClientEmail   string
	ClientCompany string
	Rating        string
	Title         string
	Content       string
	Status        string
	ReviewedBy    string
	AdminNotes    string
	CreatedAt     string
	SubmittedAt   string
	UpdatedAt     string
}

// CRMReview is the schema definition for crm.review
var CRMReview = CRMReviewTable{
	Table:         "crm.review",
	ID:            "id",
	Token:         "token",
	ClientName:    "clientname",
	ClientEmail:   "clientemail",
	ClientCompany: "clientcompany",
	Rating:        "rating",
	Title:         "title",
	Content:       "content",
	Status:        "status",
	ReviewedBy:    "reviewedby",
	AdminNotes:    "adminnotes",
	CreatedAt:     "createdat",
	SubmittedAt:   "submittedat",
	UpdatedAt:     "updatedat",
}

// Columns lists every column in table order.
func (t CRMReviewTable) Columns() []string {
	return []string{
		t.ID, t.Token, t.ClientName, t.ClientEmail, t.ClientCompany,
		t.Rating, t.Title, t.Content, t.Status, t.ReviewedBy, t.AdminNotes,
		t.CreatedAt, t.SubmittedAt, t.UpdatedAt,
	}
}

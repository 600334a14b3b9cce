package schema

// CRMLeadTable represents the 'crm.lead' table
type CRMLeadTable struct {
	Table         string
	ID            string
	FullName      string
	Email         string
	Phone         string
	ServiceType   string
	NumberOfSeats string
	Remarks       string
	AdminComments string
	Status        string
	ReviewedBy    string
	CreatedAt     string
	UpdatedAt     string
}

// CRMLead is the schema definition for crm.lead
var CRMLead = CRMLeadTable{
	Table:         "crm.lead",
	ID:            "id",
	FullName:      "fullname",
	Email:         "email",
	Phone:         "phone",
	ServiceType:   "servicetype",
	NumberOfSeats: "numberofseats",
	Remarks:       "remarks",
	AdminComments: "admincomments",
	Status:        "status",
	ReviewedBy:    "reviewedby",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns lists every column in table order.
func (t CRMLeadTable) Columns() []string {
	return []string{
		t.ID, t.FullName, t.Email, t.Phone, t.ServiceType, t.NumberOfSeats,
		t.Remarks, t.AdminComments, t.Status, t.ReviewedBy, t.CreatedAt, t.UpdatedAt,
	}
}

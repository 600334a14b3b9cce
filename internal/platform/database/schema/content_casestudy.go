package schema

// ContentCaseStudyTable represents the 'content.casestudy' table
type ContentCaseStudyTable struct {
	Table        string
	ID           string
	Slug         string
	Title        string
	Description  string
	FullContent  string
	Image        string
	Category     string
	Alt          string
	Status       string
	DisplayOrder string
	PublishDate  string
	CreatedAt    string
	UpdatedAt    string
}

// ContentCaseStudy is the schema definition for content.casestudy
var ContentCaseStudy = ContentCaseStudyTable{
	Table:        "content.casestudy",
	ID:           "id",
	Slug:         "slug",
	Title:        "title",
	Description:  "description",
	FullContent:  "fullcontent",
	Image:        "image",
	Category:     "category",
	Alt:          "alt",
	Status:       "status",
	DisplayOrder: "displayorder",
	PublishDate:  "publishdate",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns lists every column in table order.
func (t ContentCaseStudyTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.Description, t.FullContent, t.Image, t.Category,
		t.Alt, t.Status, t.DisplayOrder, t.PublishDate, t.CreatedAt, t.UpdatedAt,
	}
}

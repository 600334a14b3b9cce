package schema

// SystemNotificationTable represents the 'system.notification' table
type SystemNotificationTable struct {
	Table     string
	ID        string
	Recipient string
	Subject   string
	Message   string
	Type      string
	Status    string
	Read      string
	CreatedAt string
}

// SystemNotification is the schema definition for system.notification
var SystemNotification = SystemNotificationTable{
	Table:     "system.notification",
	ID:        "id",
	Recipient: "recipient",
	Subject:   "subject",
	Message:   "message",
	Type:      "type",
	Status:    "status",
	Read:      "isread",
	CreatedAt: "createdat",
}

// Columns lists every column in table order.
func (t SystemNotificationTable) Columns() []string {
	return []string{t.ID, t.Recipient, t.Subject, t.Message, t.Type, t.Status, t.Read, t.CreatedAt}
}

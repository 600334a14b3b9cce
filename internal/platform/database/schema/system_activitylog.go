package schema

// SystemActivityLogTable represents the 'system.activitylog' table
type SystemActivityLogTable struct {
	Table      string
	ID         string
	AdminID    string
	Action     string
	EntityType string
	EntityID   string
	Details    string
	IPAddress  string
	CreatedAt  string
}

// SystemActivityLog is the schema definition for system.activitylog
var SystemActivityLog = SystemActivityLogTable{
	Table:      "system.activitylog",
	ID:         "id",
	AdminID:    "adminid",
	Action:     "action",
	EntityType: "entitytype",
	EntityID:   "entityid",
	Details:    "details",
	IPAddress:  "ipaddress",
	CreatedAt:  "createdat",
}

// Columns lists every column in table order.
func (t SystemActivityLogTable) Columns() []string {
	return []string{t.ID, t.AdminID, t.Action, t.EntityType, t.EntityID, t.Details, t.IPAddress, t.CreatedAt}
}

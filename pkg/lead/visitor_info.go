package lead

// Field names a piece of lead signal
type Field string

const (
	FieldName             Field = "name"
	FieldEmail            Field = "email"
	FieldPhone            Field = "phone"
	FieldBudget           Field = "budget"
	FieldPropertyInterest Field = "propertyInterest"
)

// Property intents recognized by the intent strategy
const (
	IntentBuying  = "Buying"
	IntentSelling = "Selling"
	IntentRenting = "Renting"
)

// VisitorInfo is the lead signal accumulated over a conversation.
// An empty string means the field has not been captured.
type VisitorInfo struct {
	Name             string `json:"name,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Budget           string `json:"budget,omitempty"`
	PropertyInterest string `json:"propertyInterest,omitempty"`
	VisitorID        string `json:"visitorId,omitempty"`
}

// IsEmpty reports whether no contact or intent field is set. VisitorID is not
// lead signal and is ignored.
func (v VisitorInfo) IsEmpty() bool {
	return v.Name == "" && v.Email == "" && v.Phone == "" && v.Budget == "" && v.PropertyInterest == ""
}

// Get returns the value captured for a field
func (v VisitorInfo) Get(f Field) string {
	switch f {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldPhone:
		return v.Phone
	case FieldBudget:
		return v.Budget
	case FieldPropertyInterest:
		return v.PropertyInterest
	}
	return ""
}

func (v *VisitorInfo) set(f Field, value string) {
	switch f {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldPhone:
		v.Phone = value
	case FieldBudget:
		v.Budget = value
	case FieldPropertyInterest:
		v.PropertyInterest = value
	}
}

// Merge folds update into existing. The last non-empty value wins per field and
// a field is never cleared by an update that does not carry it.
func Merge(existing, update VisitorInfo) VisitorInfo {
	merged := existing
	if update.Name != "" {
		merged.Name = update.Name
	}
	if update.Email != "" {
		merged.Email = update.Email
	}
	if update.Phone != "" {
		merged.Phone = update.Phone
	}
	if update.Budget != "" {
		merged.Budget = update.Budget
	}
	if update.PropertyInterest != "" {
		merged.PropertyInterest = update.PropertyInterest
	}
	if update.VisitorID != "" {
		merged.VisitorID = update.VisitorID
	}
	return merged
}

package schools

// SchoolRecord is the validated representation of one fictional school
// invented by the generative model.
//
// Name, Address, Type, and StudentCount are required: a record is only
// considered valid when all four are present and non-placeholder, and
// StudentCount is a non-negative whole number. The remaining fields are
// optional; an empty string means the field is absent, and the omitempty
// tags keep absent fields out of serialized output.
//
// Records are immutable once produced by normalization and carry no
// identity beyond their position within one response batch.
type SchoolRecord struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Type         string `json:"type"`
	StudentCount int    `json:"studentCount"`

	PhoneNumber    string `json:"phoneNumber,omitempty"`
	PrincipalName  string `json:"principalName,omitempty"`
	AssistantName  string `json:"assistantName,omitempty"`
	ManagerEmail   string `json:"managerEmail,omitempty"`
	AssistantEmail string `json:"assistantEmail,omitempty"`
}

package domain

// IdentitySource стратегия, которая нашла совпадение по IP
type IdentitySource string

const (
	SourceRPCUserData     IdentitySource = "rpc_user_data"
	SourceRPCConsolidated IdentitySource = "rpc_consolidated"
	SourceAppointments    IdentitySource = "appointments"
	SourceRegistration    IdentitySource = "registration_data"
	SourceQuestionnaire   IdentitySource = "questionnaire_data"
)

// Identity ранее известные контакты посетителя, найденные по IP
type Identity struct {
	Name   *string        `json:"name,omitempty"`
	Phone  *string        `json:"phone,omitempty"`
	Email  *string        `json:"email,omitempty"`
	UserID *string        `json:"userId,omitempty"`
	Source IdentitySource `json:"source"`
}

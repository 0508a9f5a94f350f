package enum

// ClientStatus tracks whether a won client is actively billed.
// Only meaningful once the lead reaches a won stage.
type ClientStatus string

const (
	ClientStatusActivo   ClientStatus = "Activo"
	ClientStatusInactivo ClientStatus = "Inactivo"
)

// IsValid reports whether the client status is known
func (s ClientStatus) IsValid() bool {
	return s == ClientStatusActivo || s == ClientStatusInactivo
}

func (s ClientStatus) String() string {
	return string(s)
}

package address

// Address is a saved delivery location. Exactly one per user is flagged
// principal; checkout pre-fills from it.
type Address struct {
	ID            string `json:"id"`
	UsuarioID     string `json:"usuarioId"`
	Nombre        string `json:"nombreDireccion"`
	Direccion     string `json:"direccionCompleta"`
	Ciudad        string `json:"ciudad"`
	Departamento  string `json:"departamento"`
	CodigoPostal  string `json:"codigoPostal,omitempty"`
	Telefono      string `json:"telefono,omitempty"`
	Referencia    string `json:"referencia,omitempty"`
	EsPrincipal   bool   `json:"esPrincipal"`
	FechaCreacion string `json:"fechaCreacion"`
}

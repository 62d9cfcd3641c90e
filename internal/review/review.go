package review

// Moderation states. New reviews always enter as PENDIENTE and stay hidden
// from product pages until an admin approves them.
const (
	StatusPending  = "PENDIENTE"
	StatusApproved = "APROBADA"
	StatusRejected = "RECHAZADA"
)

type Review struct {
	ID              string `json:"id"`
	AlquilerID      string `json:"alquilerId"`
	ProductoID      string `json:"productoId"`
	ProductoNombre  string `json:"productoNombre,omitempty"`
	UsuarioID       string `json:"usuarioId"`
	UsuarioNombre   string `json:"usuarioNombre,omitempty"`
	Calificacion    int    `json:"calificacion"`
	Comentario      string `json:"comentario"`
	Estado          string `json:"estado"`
	RespuestaAdmin  string `json:"respuestaAdmin,omitempty"`
	FechaCreacion   string `json:"fechaCreacion"`
	FechaModeracion string `json:"fechaModeracion,omitempty"`
}

// Stats summarizes approved reviews for one product. Distribucion[0] counts
// one-star ratings.
type Stats struct {
	ProductoID string  `json:"productoId"`
	Promedio   float64 `json:"promedio"`
	Total      int     `json:"totalResenas"`
	Distribucion [5]int `json:"distribucion"`
}

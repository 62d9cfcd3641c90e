package catalog

// Catalog collections back the dashboard's product and category tables.

const (
	ProductActive   = "ACTIVO"
	ProductInactive = "INACTIVO"
	ProductSoldOut  = "AGOTADO"
)

type Product struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombreProducto"`
	Descripcion string  `json:"descripcionProducto"`
	// rental price per day
	Precio    float64 `json:"precioProducto"`
	Categoria string  `json:"categoriaProducto"`
	Imagen    string  `json:"imagenProducto,omitempty"`
	Stock     int     `json:"stock"`
	Estado    string  `json:"estado"`
}

type Category struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
	Icono       string `json:"icono,omitempty"`
	// derived on read, never stored
	CantidadProductos int `json:"cantidadProductos"`
}

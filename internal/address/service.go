package address

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrMissingFields = errors.New("dirección, ciudad y departamento son obligatorios")

var validate = validator.New()

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type SaveRequest struct {
	Nombre       string `json:"nombreDireccion" form:"nombreDireccion"`
	Direccion    string `json:"direccionCompleta" form:"direccionCompleta" validate:"required"`
	Ciudad       string `json:"ciudad" form:"ciudad" validate:"required"`
	Departamento string `json:"departamento" form:"departamento" validate:"required"`
	CodigoPostal string `json:"codigoPostal" form:"codigoPostal"`
	Telefono     string `json:"telefono" form:"telefono"`
	Referencia   string `json:"referencia" form:"referencia"`
}

func (r SaveRequest) validateRequired() error {
	if err := validate.Struct(r); err != nil {
		return ErrMissingFields
	}
	return nil
}

func (s *Service) List(userID string) ([]Address, error) {
	addresses, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}
	if addresses == nil {
		addresses = []Address{}
	}
	return addresses, nil
}

// Create stores a new address; the first one becomes principal.
func (s *Service) Create(userID string, req SaveRequest) (Address, error) {
	if err := req.validateRequired(); err != nil {
		return Address{}, err
	}
	addresses, err := s.repo.List(userID)
	if err != nil {
		return Address{}, err
	}
	addr := Address{
		ID:            uuid.NewString(),
		UsuarioID:     userID,
		Nombre:        req.Nombre,
		Direccion:     req.Direccion,
		Ciudad:        req.Ciudad,
		Departamento:  req.Departamento,
		CodigoPostal:  req.CodigoPostal,
		Telefono:      req.Telefono,
		Referencia:    req.Referencia,
		EsPrincipal:   len(addresses) == 0,
		FechaCreacion: time.Now().UTC().Format(time.RFC3339),
	}
	addresses = append(addresses, addr)
	if err := s.repo.Save(userID, addresses); err != nil {
		return Address{}, err
	}
	return addr, nil
}

func (s *Service) Update(userID, id string, req SaveRequest) (Address, error) {
	if err := req.validateRequired(); err != nil {
		return Address{}, err
	}
	addresses, err := s.repo.List(userID)
	if err != nil {
		return Address{}, err
	}
	for i, addr := range addresses {
		if addr.ID != id {
			continue
		}
		addr.Nombre = req.Nombre
		addr.Direccion = req.Direccion
		addr.Ciudad = req.Ciudad
		addr.Departamento = req.Departamento
		addr.CodigoPostal = req.CodigoPostal
		addr.Telefono = req.Telefono
		addr.Referencia = req.Referencia
		addresses[i] = addr
		return addr, s.repo.Save(userID, addresses)
	}
	return Address{}, ErrNotFound
}

// Delete removes an address; deleting the principal promotes the oldest
// remaining one.
func (s *Service) Delete(userID, id string) error {
	addresses, err := s.repo.List(userID)
	if err != nil {
		return err
	}
	idx := -1
	for i, addr := range addresses {
		if addr.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	wasPrincipal := addresses[idx].EsPrincipal
	addresses = append(addresses[:idx], addresses[idx+1:]...)
	if wasPrincipal && len(addresses) > 0 {
		addresses[0].EsPrincipal = true
	}
	return s.repo.Save(userID, addresses)
}

// SetPrincipal moves the principal flag; exactly one address keeps it.
func (s *Service) SetPrincipal(userID, id string) error {
	addresses, err := s.repo.List(userID)
	if err != nil {
		return err
	}
	found := false
	for i := range addresses {
		addresses[i].EsPrincipal = addresses[i].ID == id
		if addresses[i].ID == id {
			found = true
		}
	}
	if !found {
		return ErrNotFound
	}
	return s.repo.Save(userID, addresses)
}

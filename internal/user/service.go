package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]User, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) CountUsers() (int, error) {
	users, err := s.repo.List()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func (s *Service) Register(u User) (User, error) {
	u.Correo = strings.ToLower(strings.TrimSpace(u.Correo))
	if u.Nombre == "" || u.Correo == "" || u.Password == "" {
		return User{}, ErrInvalidCredentials
	}
	if _, err := s.repo.GetByEmail(u.Correo); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)
	u.ID = uuid.NewString()
	if u.Rol == "" {
		u.Rol = RoleUser
	}
	u.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	return s.repo.Create(u)
}

func (s *Service) Authenticate(correo, password string) (User, error) {
	u, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(correo)))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// AuthenticateAdmin is Authenticate restricted to the admin role; the admin
// dashboard has its own login endpoint.
func (s *Service) AuthenticateAdmin(correo, password string) (User, error) {
	u, err := s.Authenticate(correo, password)
	if err != nil {
		return User{}, err
	}
	if u.Rol != RoleAdmin {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Update(id string, u User) (User, error) {
	if u.Password != "" && !looksLikeBcrypt(u.Password) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		u.Password = string(hashed)
	}
	return s.repo.Update(id, u)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

func looksLikeBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

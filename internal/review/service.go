package review

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBadRating       = errors.New("la calificación debe estar entre 1 y 5")
	ErrShortComment    = errors.New("el comentario debe tener al menos 10 caracteres")
	ErrMissingProduct  = errors.New("producto requerido")
	ErrMissingRental   = errors.New("alquiler requerido")
	ErrAlreadyReviewed = errors.New("ya has reseñado este producto")
	ErrNotPending      = errors.New("la reseña ya fue moderada")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateRequest struct {
	AlquilerID     string `json:"alquilerId" form:"alquilerId"`
	ProductoID     string `json:"productoId" form:"productoId"`
	ProductoNombre string `json:"productoNombre" form:"productoNombre"`
	Calificacion   int    `json:"calificacion" form:"calificacion"`
	Comentario     string `json:"comentario" form:"comentario"`
}

func validate(req CreateRequest) error {
	if req.AlquilerID == "" {
		return ErrMissingRental
	}
	if req.ProductoID == "" {
		return ErrMissingProduct
	}
	if req.Calificacion < 1 || req.Calificacion > 5 {
		return ErrBadRating
	}
	if len(strings.TrimSpace(req.Comentario)) < 10 {
		return ErrShortComment
	}
	return nil
}

// Create stores a single pending review. One review per user, rental and
// product; the repository is the source of truth for "already reviewed".
func (s *Service) Create(userID, userName string, req CreateRequest) (Review, error) {
	if err := validate(req); err != nil {
		return Review{}, err
	}
	exists, err := s.repo.Exists(req.AlquilerID, req.ProductoID, userID)
	if err != nil {
		return Review{}, err
	}
	if exists {
		return Review{}, ErrAlreadyReviewed
	}
	rev := Review{
		ID:             uuid.NewString(),
		AlquilerID:     req.AlquilerID,
		ProductoID:     req.ProductoID,
		ProductoNombre: req.ProductoNombre,
		UsuarioID:      userID,
		UsuarioNombre:  userName,
		Calificacion:   req.Calificacion,
		Comentario:     req.Comentario,
		Estado:         StatusPending,
		FechaCreacion:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.Save(rev); err != nil {
		return Review{}, err
	}
	return rev, nil
}

// BatchResult reports how a fan-out submission went: already-reviewed
// products are skipped, hard failures are counted but do not stop the loop.
type BatchResult struct {
	Creadas  int `json:"creadas"`
	Omitidas int `json:"omitidas"`
	Errores  int `json:"errores"`
}

type ProductRef struct {
	ProductoID     string `json:"productoId" form:"productoId"`
	ProductoNombre string `json:"productoNombre" form:"productoNombre"`
}

// CreateGeneral applies one rating and comment to every listed product.
func (s *Service) CreateGeneral(userID, userName, alquilerID string, productos []ProductRef, calificacion int, comentario string) (BatchResult, error) {
	if len(productos) == 0 {
		return BatchResult{}, ErrMissingProduct
	}
	probe := CreateRequest{AlquilerID: alquilerID, ProductoID: productos[0].ProductoID, Calificacion: calificacion, Comentario: comentario}
	if err := validate(probe); err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	for _, p := range productos {
		_, err := s.Create(userID, userName, CreateRequest{
			AlquilerID:     alquilerID,
			ProductoID:     p.ProductoID,
			ProductoNombre: p.ProductoNombre,
			Calificacion:   calificacion,
			Comentario:     comentario,
		})
		switch {
		case err == nil:
			result.Creadas++
		case errors.Is(err, ErrAlreadyReviewed):
			result.Omitidas++
		default:
			result.Errores++
		}
	}
	return result, nil
}

type IndividualEntry struct {
	ProductoID     string `json:"productoId" form:"productoId"`
	ProductoNombre string `json:"productoNombre" form:"productoNombre"`
	Calificacion   int    `json:"calificacion" form:"calificacion"`
	Comentario     string `json:"comentario" form:"comentario"`
}

// CreateIndividual applies per-product ratings and comments, skipping
// products already reviewed and counting per-entry failures.
func (s *Service) CreateIndividual(userID, userName, alquilerID string, entries []IndividualEntry) (BatchResult, error) {
	if len(entries) == 0 {
		return BatchResult{}, ErrMissingProduct
	}
	var result BatchResult
	for _, e := range entries {
		_, err := s.Create(userID, userName, CreateRequest{
			AlquilerID:     alquilerID,
			ProductoID:     e.ProductoID,
			ProductoNombre: e.ProductoNombre,
			Calificacion:   e.Calificacion,
			Comentario:     e.Comentario,
		})
		switch {
		case err == nil:
			result.Creadas++
		case errors.Is(err, ErrAlreadyReviewed):
			result.Omitidas++
		default:
			result.Errores++
		}
	}
	return result, nil
}

// ListByProduct returns approved reviews only; pending and rejected reviews
// never reach product pages.
func (s *Service) ListByProduct(productoID string) ([]Review, error) {
	reviews, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]Review, 0)
	for _, rev := range reviews {
		if rev.ProductoID == productoID && rev.Estado == StatusApproved {
			out = append(out, rev)
		}
	}
	return out, nil
}

// StatsByProduct averages approved ratings, rounded to one decimal.
func (s *Service) StatsByProduct(productoID string) (Stats, error) {
	approved, err := s.ListByProduct(productoID)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{ProductoID: productoID, Total: len(approved)}
	if len(approved) == 0 {
		return stats, nil
	}
	sum := 0
	for _, rev := range approved {
		sum += rev.Calificacion
		stats.Distribucion[rev.Calificacion-1]++
	}
	stats.Promedio = math.Round(float64(sum)/float64(len(approved))*10) / 10
	return stats, nil
}

func (s *Service) ListByUser(userID string) ([]Review, error) {
	reviews, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]Review, 0)
	for _, rev := range reviews {
		if rev.UsuarioID == userID {
			out = append(out, rev)
		}
	}
	return out, nil
}

// ReviewedProducts lists product ids the user already reviewed for a rental,
// so submission forms can pre-disable them.
func (s *Service) ReviewedProducts(alquilerID, userID string) ([]string, error) {
	reviews, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0)
	for _, rev := range reviews {
		if rev.AlquilerID == alquilerID && rev.UsuarioID == userID {
			out = append(out, rev.ProductoID)
		}
	}
	return out, nil
}

func (s *Service) ListPending() ([]Review, error) {
	reviews, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]Review, 0)
	for _, rev := range reviews {
		if rev.Estado == StatusPending {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (s *Service) PendingCount() (int, error) {
	pending, err := s.ListPending()
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}

func (s *Service) moderate(id, estado string) (Review, error) {
	rev, err := s.repo.Get(id)
	if err != nil {
		return Review{}, err
	}
	if rev.Estado != StatusPending {
		return Review{}, ErrNotPending
	}
	rev.Estado = estado
	rev.FechaModeracion = time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.Save(rev); err != nil {
		return Review{}, err
	}
	return rev, nil
}

func (s *Service) Approve(id string) (Review, error) { return s.moderate(id, StatusApproved) }
func (s *Service) Reject(id string) (Review, error)  { return s.moderate(id, StatusRejected) }

func (s *Service) Reply(id, respuesta string) (Review, error) {
	rev, err := s.repo.Get(id)
	if err != nil {
		return Review{}, err
	}
	rev.RespuestaAdmin = respuesta
	if err := s.repo.Save(rev); err != nil {
		return Review{}, err
	}
	return rev, nil
}

// ModerationResult reports a bulk moderation pass.
type ModerationResult struct {
	Procesadas int `json:"procesadas"`
	Errores    int `json:"errores"`
}

// moderateAll walks the pending list in order, best-effort: individual
// failures are counted and the loop continues. Callers re-fetch state after.
func (s *Service) moderateAll(estado string) (ModerationResult, error) {
	pending, err := s.ListPending()
	if err != nil {
		return ModerationResult{}, err
	}
	var result ModerationResult
	for _, rev := range pending {
		if _, err := s.moderate(rev.ID, estado); err != nil {
			result.Errores++
			continue
		}
		result.Procesadas++
	}
	return result, nil
}

func (s *Service) ApproveAll() (ModerationResult, error) { return s.moderateAll(StatusApproved) }
func (s *Service) RejectAll() (ModerationResult, error)  { return s.moderateAll(StatusRejected) }

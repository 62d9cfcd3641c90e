package card

import (
	"errors"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
)

const maxCards = 5

var (
	ErrLimitReached  = errors.New("máximo 5 tarjetas guardadas")
	ErrDuplicate     = errors.New("ya tienes una tarjeta guardada con esos últimos dígitos")
	ErrBadNumber     = errors.New("número de tarjeta inválido")
	ErrBadCVV        = errors.New("CVV inválido")
	ErrBadExpiry     = errors.New("fecha de expiración inválida")
	ErrMissingHolder = errors.New("nombre del titular requerido")
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

type Service struct {
	repo Repository
	box  *cipherBox
}

func NewService(repo Repository, secret string) (*Service, error) {
	box, err := newCipherBox(secret)
	if err != nil {
		return nil, err
	}
	return &Service{repo: repo, box: box}, nil
}

type SaveRequest struct {
	Numero         string `json:"numeroTarjeta" form:"numeroTarjeta"`
	CVV            string `json:"cvv" form:"cvv"`
	NombreTitular  string `json:"nombreTitular" form:"nombreTitular"`
	MesExpiracion  int    `json:"mesExpiracion" form:"mesExpiracion"`
	AnioExpiracion int    `json:"anioExpiracion" form:"anioExpiracion"`
	Alias          string `json:"alias" form:"alias"`
}

func validate(req SaveRequest, now time.Time) error {
	if len(req.Numero) < 13 || len(req.Numero) > 19 || !digitsOnly.MatchString(req.Numero) {
		return ErrBadNumber
	}
	if len(req.CVV) != 3 || !digitsOnly.MatchString(req.CVV) {
		return ErrBadCVV
	}
	if req.NombreTitular == "" {
		return ErrMissingHolder
	}
	if req.MesExpiracion < 1 || req.MesExpiracion > 12 {
		return ErrBadExpiry
	}
	if expired(req.MesExpiracion, req.AnioExpiracion, now) {
		return ErrBadExpiry
	}
	return nil
}

// List returns the user's vault with the expiration flag recomputed.
func (s *Service) List(userID string) ([]Card, error) {
	records, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	cards := make([]Card, 0, len(records))
	for _, rec := range records {
		rec.Card.EstaVencida = expired(rec.MesExpiracion, rec.AnioExpiracion, now)
		cards = append(cards, rec.Card)
	}
	return cards, nil
}

// Save vaults a new card. The vault holds at most five cards, one per
// distinct last-four; the first card stored becomes the default.
func (s *Service) Save(userID string, req SaveRequest) (Card, error) {
	if err := validate(req, time.Now()); err != nil {
		return Card{}, err
	}
	records, err := s.repo.List(userID)
	if err != nil {
		return Card{}, err
	}
	if len(records) >= maxCards {
		return Card{}, ErrLimitReached
	}
	tail := req.Numero[len(req.Numero)-4:]
	for _, rec := range records {
		if lastFour(rec.NumeroEnmascarado) == tail {
			return Card{}, ErrDuplicate
		}
	}

	sealedNumber, err := s.box.seal(req.Numero)
	if err != nil {
		return Card{}, err
	}
	sealedCVV, err := s.box.seal(req.CVV)
	if err != nil {
		return Card{}, err
	}

	rec := record{
		Card: Card{
			ID:                uuid.NewString(),
			NumeroEnmascarado: Mask(req.Numero),
			Tipo:              DetectType(req.Numero),
			NombreTitular:     req.NombreTitular,
			MesExpiracion:     req.MesExpiracion,
			AnioExpiracion:    req.AnioExpiracion,
			Alias:             req.Alias,
			EsPredeterminada:  len(records) == 0,
			FechaCreacion:     time.Now().UTC().Format(time.RFC3339),
		},
		NumeroCifrado: sealedNumber,
		CVVCifrado:    sealedCVV,
	}
	records = append(records, rec)
	if err := s.repo.Save(userID, records); err != nil {
		return Card{}, err
	}
	return rec.Card, nil
}

func (s *Service) SetDefault(userID, cardID string) error {
	records, err := s.repo.List(userID)
	if err != nil {
		return err
	}
	found := false
	for i := range records {
		records[i].EsPredeterminada = records[i].ID == cardID
		if records[i].ID == cardID {
			found = true
		}
	}
	if !found {
		return ErrNotFound
	}
	return s.repo.Save(userID, records)
}

// Delete removes a card; if it was the default, the oldest remaining card
// is promoted.
func (s *Service) Delete(userID, cardID string) error {
	records, err := s.repo.List(userID)
	if err != nil {
		return err
	}
	idx := -1
	for i, rec := range records {
		if rec.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	wasDefault := records[idx].EsPredeterminada
	records = append(records[:idx], records[idx+1:]...)
	if wasDefault && len(records) > 0 {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].FechaCreacion < records[j].FechaCreacion
		})
		for i := range records {
			records[i].EsPredeterminada = i == 0
		}
	}
	return s.repo.Save(userID, records)
}

// CleanDuplicates keeps only the newest card per last-four. Returns how many
// cards were dropped.
func (s *Service) CleanDuplicates(userID string) (int, error) {
	records, err := s.repo.List(userID)
	if err != nil {
		return 0, err
	}
	newest := make(map[string]record)
	for _, rec := range records {
		tail := lastFour(rec.NumeroEnmascarado)
		if kept, ok := newest[tail]; !ok || rec.FechaCreacion > kept.FechaCreacion {
			newest[tail] = rec
		}
	}
	if len(newest) == len(records) {
		return 0, nil
	}
	kept := make([]record, 0, len(newest))
	hasDefault := false
	for _, rec := range newest {
		if rec.EsPredeterminada {
			hasDefault = true
		}
		kept = append(kept, rec)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].FechaCreacion < kept[j].FechaCreacion
	})
	if !hasDefault && len(kept) > 0 {
		kept[0].EsPredeterminada = true
	}
	removed := len(records) - len(kept)
	return removed, s.repo.Save(userID, kept)
}

// Reveal decrypts a vaulted card for payment processing. Never exposed over
// HTTP.
func (s *Service) Reveal(userID, cardID string) (number, cvv string, err error) {
	records, err := s.repo.List(userID)
	if err != nil {
		return "", "", err
	}
	for _, rec := range records {
		if rec.ID != cardID {
			continue
		}
		number, err = s.box.open(rec.NumeroCifrado)
		if err != nil {
			return "", "", err
		}
		cvv, err = s.box.open(rec.CVVCifrado)
		if err != nil {
			return "", "", err
		}
		return number, cvv, nil
	}
	return "", "", ErrNotFound
}

package theme

import (
	"context"
	"errors"

	"github.com/furent/furniture-rental-backend/internal/store"
)

const (
	Light = "light"
	Dark  = "dark"

	// Default applies whenever no preference was ever stored.
	Default = Light
)

var ErrUnknownTheme = errors.New("tema desconocido")

// Service persists the per-user theme preference. The write is the source of
// truth: a page render is a pure function of the stored value.
type Service struct {
	st store.Store
}

func NewService(st store.Store) *Service {
	return &Service{st: st}
}

func (s *Service) Get(userID string) (string, error) {
	var pref string
	err := s.st.Get(context.Background(), store.UserKey(store.KeyThemePfx, userID), &pref)
	if err == store.ErrNotFound {
		return Default, nil
	}
	if err != nil {
		return "", err
	}
	return pref, nil
}

func (s *Service) Set(userID, pref string) error {
	if pref != Light && pref != Dark {
		return ErrUnknownTheme
	}
	return s.st.Set(context.Background(), store.UserKey(store.KeyThemePfx, userID), pref)
}

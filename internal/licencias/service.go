package licencias

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"licsim/internal/overlay"
)

var (
	ErrTypeNotFound = errors.New("tipo de licencia no encontrado")
	ErrInvalidType  = errors.New("tipo de licencia inválido")
)

// Service merges the base catalog with admin wording edits. Types are
// never added or removed; the id set is the contract with the exam and
// the case flow.
type Service struct {
	overlay *overlay.Store
}

func NewService(ov *overlay.Store) *Service {
	return &Service{overlay: ov}
}

// Effective returns the catalog with admin edits applied, in base order.
func (s *Service) Effective(ctx context.Context) ([]LicenseType, error) {
	log, err := s.overlay.Load(ctx, overlay.BucketLicenseTypes)
	if err != nil {
		return nil, fmt.Errorf("load license overlay: %w", err)
	}

	out := Catalog()
	for i := range out {
		payload, ok := log.Edits[out[i].ID]
		if !ok {
			continue
		}
		var edited LicenseType
		if err := json.Unmarshal(payload, &edited); err != nil {
			return nil, fmt.Errorf("decode license override %s: %w", out[i].ID, err)
		}
		edited.ID = out[i].ID
		out[i] = edited
	}
	return out, nil
}

// Edit overrides the presentation fields of one type. The id is fixed;
// an unknown id is a not-found, never an insert.
func (s *Service) Edit(ctx context.Context, id string, lt LicenseType) (*LicenseType, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if !inBaseCatalog(id) {
		return nil, ErrTypeNotFound
	}
	lt.ID = id
	if err := validateType(lt); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(lt)
	if err != nil {
		return nil, fmt.Errorf("encode license override: %w", err)
	}
	if err := s.overlay.Put(ctx, overlay.BucketLicenseTypes, id, overlay.OpEdit, payload); err != nil {
		return nil, fmt.Errorf("store license override: %w", err)
	}
	return &lt, nil
}

// Reset drops every wording edit, restoring the base catalog.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.overlay.Reset(ctx, overlay.BucketLicenseTypes); err != nil {
		return fmt.Errorf("reset license overlay: %w", err)
	}
	return nil
}

func inBaseCatalog(id string) bool {
	for _, lt := range baseCatalog {
		if lt.ID == id {
			return true
		}
	}
	return false
}

func validateType(lt LicenseType) error {
	if strings.TrimSpace(lt.Name) == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", ErrInvalidType)
	}
	if strings.TrimSpace(lt.Description) == "" {
		return fmt.Errorf("%w: la descripción es obligatoria", ErrInvalidType)
	}
	for _, req := range lt.Requirements {
		if strings.TrimSpace(req) == "" {
			return fmt.Errorf("%w: requisito vacío", ErrInvalidType)
		}
	}
	return nil
}

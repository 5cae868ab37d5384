package pets

import "context"

// OwnerOf y NameOf implementan caretasks.PetDirectory.
// Se usan para evitar ciclos de imports entre módulos (pets <-> caretasks).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

func (s *Service) NameOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

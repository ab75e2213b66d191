package cv

import "time"

// Service orchestrates CV persistence. It owns the rules both surfaces
// share: the derived document title, the skip-blank-rows policy for the
// experience and education lists, and the timestamps.

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(userID int, input CV) (CV, error) {
	if userID <= 0 {
		return CV{}, ErrNotFound
	}

	now := time.Now().UTC().Format(time.RFC3339)
	input.UserID = userID
	input.Title = deriveTitle(input)
	input.Experiences = keepFilledExperiences(input.Experiences)
	input.Education = keepFilledEducation(input.Education)
	input.CreatedAt = now
	input.UpdatedAt = now

	return s.repo.Create(input)
}

func (s *Service) Update(userID, cvID int, input CV) (CV, error) {
	if userID <= 0 || cvID <= 0 {
		return CV{}, ErrNotFound
	}

	input.UserID = userID
	input.Title = deriveTitle(input)
	input.Experiences = keepFilledExperiences(input.Experiences)
	input.Education = keepFilledEducation(input.Education)
	input.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	return s.repo.Update(userID, cvID, input)
}

func (s *Service) Delete(userID, cvID int) error {
	if userID <= 0 || cvID <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(userID, cvID)
}

func (s *Service) GetByID(userID, cvID int) (CV, error) {
	if userID <= 0 || cvID <= 0 {
		return CV{}, ErrNotFound
	}
	return s.repo.GetByID(userID, cvID)
}

func (s *Service) ListByUser(userID int) ([]CV, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByUser(userID)
}

// deriveTitle recomputes the document title on every save; it is never
// editable on its own.
func deriveTitle(c CV) string {
	return c.FullName + " - " + c.ProfessionalTitle
}

// keepFilledExperiences drops rows whose title is empty. Sibling fields of a
// kept row are taken as-is, empty strings included, and order is preserved.
func keepFilledExperiences(list []Experience) []Experience {
	out := make([]Experience, 0, len(list))
	for _, e := range list {
		if e.Title != "" {
			out = append(out, e)
		}
	}
	return out
}

// keepFilledEducation is the same policy keyed on degree.
func keepFilledEducation(list []Education) []Education {
	out := make([]Education, 0, len(list))
	for _, e := range list {
		if e.Degree != "" {
			out = append(out, e)
		}
	}
	return out
}

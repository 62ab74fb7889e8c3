package usecase

import (
	"strings"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemdto "thoughtfolio-backend/internal/gem/dto"
	"thoughtfolio-backend/internal/gem/repository"
)

type sourceUsecase struct {
	sourceRepo repository.SourceRepository
}

func NewSourceUsecase(sourceRepo repository.SourceRepository) SourceUsecase {
	return &sourceUsecase{sourceRepo: sourceRepo}
}

func sourceType(raw string) (gemdomain.SourceType, error) {
	if raw == "" {
		return gemdomain.SourceTypeOther, nil
	}
	t := gemdomain.SourceType(strings.ToLower(raw))
	if !t.Valid() {
		return "", gemdomain.ErrInvalidSourceType
	}
	return t, nil
}

func (u *sourceUsecase) CreateSource(userID string, req *gemdto.SourceRequest) (*gemdomain.Source, error) {
	t, err := sourceType(req.Type)
	if err != nil {
		return nil, err
	}
	source := &gemdomain.Source{
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		Author: strings.TrimSpace(req.Author),
		Type:   t,
		URL:    strings.TrimSpace(req.URL),
	}
	if source.Name == "" {
		return nil, gemdomain.ErrContentRequired
	}
	if err := u.sourceRepo.Create(source); err != nil {
		return nil, err
	}
	return source, nil
}

func (u *sourceUsecase) ListSources(userID string) ([]gemdomain.Source, error) {
	return u.sourceRepo.List(userID)
}

func (u *sourceUsecase) GetSource(userID, id string) (*gemdomain.Source, error) {
	source, err := u.sourceRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, gemdomain.ErrSourceNotFound
	}
	return source, nil
}

func (u *sourceUsecase) UpdateSource(userID, id string, req *gemdto.SourceRequest) (*gemdomain.Source, error) {
	source, err := u.GetSource(userID, id)
	if err != nil {
		return nil, err
	}
	t, err := sourceType(req.Type)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		source.Name = name
	}
	source.Author = strings.TrimSpace(req.Author)
	source.Type = t
	source.URL = strings.TrimSpace(req.URL)

	if err := u.sourceRepo.Update(source); err != nil {
		return nil, err
	}
	return source, nil
}

func (u *sourceUsecase) DeleteSource(userID, id string) error {
	if _, err := u.GetSource(userID, id); err != nil {
		return err
	}
	return u.sourceRepo.Delete(userID, id)
}

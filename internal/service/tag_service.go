package service

import (
	"context"
	"regexp"
	"strings"

	"task_manager/internal/domain"
	"task_manager/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

var hexColorRe = regexp.MustCompile(`^#([A-Fa-f0-9]{3}|[A-Fa-f0-9]{6})$`)

// TagService enforces the tag namespace rules: one shared scope for system
// tags, one per-user scope for personal tags, and no personal name may
// shadow a system name.
type TagService struct {
	tags *repository.TagRepository
}

func NewTagService(db *pgxpool.Pool) *TagService {
	return &TagService{tags: repository.NewTagRepository(db)}
}

func (s *TagService) ListVisible(ctx context.Context, userID int64) ([]*domain.Tag, error) {
	return s.tags.ListVisible(ctx, userID)
}

// Create finds or creates the user's personal tag with the given name.
// Repeating the same create is not an error: the existing tag comes back
// with created=false. Color defaults to the neutral gray when omitted.
func (s *TagService) Create(ctx context.Context, userID int64, name, color string) (*domain.Tag, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, domain.NewValidationError("tag name is required")
	}
	if color == "" {
		color = domain.DefaultTagColor
	} else if !hexColorRe.MatchString(color) {
		return nil, false, domain.NewValidationError("color must be a hex value (#RGB or #RRGGBB)")
	}

	taken, err := s.tags.SystemNameExists(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if taken {
		return nil, false, domain.ErrNameConflict
	}

	return s.tags.FindOrCreatePersonal(ctx, userID, name, color)
}

// Update renames and/or recolors a personal tag owned by the caller.
// System tags and other users' tags are both protected with Forbidden.
// Nil fields keep their prior values.
func (s *TagService) Update(ctx context.Context, userID, tagID int64, name, color *string) (*domain.Tag, error) {
	tag, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tag.IsSystem() || !tag.OwnedBy(userID) {
		return nil, domain.ErrForbidden
	}

	if name != nil {
		newName := strings.TrimSpace(*name)
		if newName == "" {
			return nil, domain.NewValidationError("tag name is required")
		}
		if newName != tag.Name {
			taken, err := s.tags.SystemNameExists(ctx, newName)
			if err != nil {
				return nil, err
			}
			if !taken {
				taken, err = s.tags.PersonalNameExists(ctx, userID, newName, tag.ID)
				if err != nil {
					return nil, err
				}
			}
			if taken {
				return nil, domain.ErrNameConflict
			}
		}
		tag.Name = newName
	}

	if color != nil {
		if !hexColorRe.MatchString(*color) {
			return nil, domain.NewValidationError("color must be a hex value (#RGB or #RRGGBB)")
		}
		tag.Color = *color
	}

	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete removes a personal tag owned by the caller together with its task
// links. The tasks themselves stay.
func (s *TagService) Delete(ctx context.Context, userID, tagID int64) error {
	tag, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		return err
	}
	if tag.IsSystem() || !tag.OwnedBy(userID) {
		return domain.ErrForbidden
	}
	return s.tags.Delete(ctx, tag.ID)
}

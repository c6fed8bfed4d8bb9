package tags

import (
	"context"

	"github.com/dmitrijs2005/simplenotes/internal/models"
)

// Repository manages tags and their note associations.
type Repository interface {
	Create(ctx context.Context, t *models.Tag) error
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	Delete(ctx context.Context, id string) error

	Attach(ctx context.Context, noteID, tagID string) error
	Detach(ctx context.Context, noteID, tagID string) error
	ListForNote(ctx context.Context, noteID string) ([]models.Tag, error)
	ListNoteIDs(ctx context.Context, tagID string) ([]string, error)
}

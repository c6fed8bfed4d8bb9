package folders

import (
	"context"

	"github.com/dmitrijs2005/simplenotes/internal/models"
)

// Repository manages note folders.
type Repository interface {
	List(ctx context.Context) ([]models.Folder, error)
	Create(ctx context.Context, f *models.Folder) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

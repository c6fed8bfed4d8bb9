package backup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/simplenotes/internal/dbx"
	"github.com/dmitrijs2005/simplenotes/internal/filex"
	"github.com/dmitrijs2005/simplenotes/internal/logging"
	"github.com/dmitrijs2005/simplenotes/internal/models"
	"github.com/dmitrijs2005/simplenotes/internal/repositories/folders"
	"github.com/dmitrijs2005/simplenotes/internal/repositories/notes"
	"github.com/dmitrijs2005/simplenotes/internal/repositories/tags"
	"github.com/google/uuid"
)

const ext = ".md"

// Result summarizes an import.
type Result struct {
	Created int
	Updated int
	// Skipped lists files that could not be parsed.
	Skipped []string
}

// Service exports and imports the notes stored in db.
type Service struct {
	db     *sql.DB
	logger logging.Logger
}

// NewService returns a Service bound to the shared database handle.
func NewService(db *sql.DB, logger logging.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Export writes every note, deleted ones included, into dir and returns the
// number of files written.
func (s *Service) Export(ctx context.Context, dir string) (int, error) {
	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return 0, err
	}

	noteRepo := notes.NewSQLiteRepository(s.db)
	tagRepo := tags.NewSQLiteRepository(s.db)

	fl, err := folders.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return 0, err
	}
	byID := make(map[string]*folderRef, len(fl))
	for _, f := range fl {
		idx := f.Idx
		byID[f.ID] = &folderRef{ID: f.ID, Name: f.Name, Idx: &idx}
	}

	all, err := noteRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, n := range all {
		ts, err := tagRepo.ListForNote(ctx, n.ID)
		if err != nil {
			return 0, err
		}
		names := make([]string, 0, len(ts))
		for _, t := range ts {
			names = append(names, t.Name)
		}

		doc := document{Note: n, Tags: names}
		if n.FolderID != nil {
			doc.Folder = byID[*n.FolderID]
		}
		data, err := encode(doc)
		if err != nil {
			return 0, fmt.Errorf("export note[%s]: %w", n.ID, err)
		}
		if err := filex.WriteFileAtomic(filepath.Join(dir, fileName(n.ID)), data, 0o600); err != nil {
			return 0, fmt.Errorf("export note[%s]: %w", n.ID, err)
		}
	}
	s.logger.Info(ctx, "notes exported", "dir", dir, "count", len(all))
	return len(all), nil
}

// Import reads every .md file in dir. Files that do not parse are skipped and
// reported; store errors abort the import. Each note is written in its own
// transaction together with its folder and tags.
func (s *Service) Import(ctx context.Context, dir string) (Result, error) {
	var res Result

	entries, err := os.ReadDir(dir)
	if err != nil {
		return res, fmt.Errorf("read backup dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		path := filepath.Join(dir, e.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			return res, fmt.Errorf("read %s: %w", path, err)
		}
		doc, err := decode(data)
		if err != nil {
			s.logger.Warn(ctx, "skipping backup file", "path", path, "error", err)
			res.Skipped = append(res.Skipped, e.Name())
			continue
		}

		var created bool
		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			var err error
			created, err = importOne(ctx, tx, doc)
			return err
		})
		if err != nil {
			return res, fmt.Errorf("import %s: %w", e.Name(), err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}

	s.logger.Info(ctx, "notes imported", "dir", dir, "created", res.Created, "updated", res.Updated, "skipped", len(res.Skipped))
	return res, nil
}

func importOne(ctx context.Context, tx dbx.DBTX, doc document) (bool, error) {
	noteRepo := notes.NewSQLiteRepository(tx)
	tagRepo := tags.NewSQLiteRepository(tx)
	n := doc.Note

	if doc.Folder != nil {
		if err := ensureFolder(ctx, folders.NewSQLiteRepository(tx), *doc.Folder); err != nil {
			return false, err
		}
	}

	existing, err := noteRepo.GetNote(ctx, n.ID)
	if err != nil {
		return false, err
	}
	created := existing == nil
	if created {
		if err := noteRepo.CreateNote(ctx, &n); err != nil {
			return false, err
		}
	} else {
		u := models.NoteUpdate{
			Title:      models.Some(n.Title),
			Content:    models.Some(n.Content),
			FolderID:   models.Some(n.FolderID),
			ColorHex:   models.Some(n.ColorHex),
			IsPinned:   models.Some(n.IsPinned),
			IsArchived: models.Some(n.IsArchived),
			IsLocked:   models.Some(n.IsLocked),
			IsDeleted:  models.Some(n.IsDeleted),
			UpdatedAt:  models.Some(n.UpdatedAt),
		}
		if err := noteRepo.UpdateNote(ctx, n.ID, u); err != nil {
			return false, err
		}
	}

	for _, name := range doc.Tags {
		t, err := tagRepo.GetByName(ctx, name)
		if err != nil {
			return false, err
		}
		if t == nil {
			t = &models.Tag{ID: uuid.NewString(), Name: name}
			if err := tagRepo.Create(ctx, t); err != nil {
				return false, err
			}
		}
		if err := tagRepo.Attach(ctx, n.ID, t.ID); err != nil {
			return false, err
		}
	}
	return created, nil
}

// ensureFolder creates a folder referenced by an imported note when the
// target store does not have it. The recorded name is kept unless another
// folder already uses it, in which case the id is appended. Without a
// recorded position the folder goes after the existing ones.
func ensureFolder(ctx context.Context, repo *folders.SQLiteRepository, ref folderRef) error {
	list, err := repo.List(ctx)
	if err != nil {
		return err
	}
	taken := make(map[string]bool, len(list))
	idx := 0
	for _, f := range list {
		if f.ID == ref.ID {
			return nil
		}
		taken[f.Name] = true
		idx = max(idx, f.Idx+1)
	}
	if ref.Idx != nil {
		idx = *ref.Idx
	}
	name := ref.Name
	if name == "" {
		name = ref.ID
	}
	return repo.Create(ctx, &models.Folder{ID: ref.ID, Name: uniqueName(name, ref.ID, taken), Idx: idx})
}

func uniqueName(name, id string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	candidate := fmt.Sprintf("%s (%s)", name, id)
	for i := 2; taken[candidate]; i++ {
		candidate = fmt.Sprintf("%s (%s %d)", name, id, i)
	}
	return candidate
}

// fileName maps a note id onto a file name that no other id shares.
func fileName(id string) string {
	return filex.SafeName(id) + ext
}

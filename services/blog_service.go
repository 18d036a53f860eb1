package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/setidure/blog-api/errs"
	"github.com/setidure/blog-api/models"
	"github.com/setidure/blog-api/store"
)

// BlogService orchestrates create/read/update/delete over the collection and
// owns identity and slug assignment. Mutating operations are serialized
// behind a mutex: each one is a load-modify-save of the whole collection, and
// without the lock two concurrent writers would silently drop one change.
type BlogService struct {
	store    store.BlogStore
	defaults Defaults
	logger   zerolog.Logger

	mu sync.Mutex

	// now is swapped out by tests that pin timestamps
	now func() time.Time
}

func NewBlogService(blogStore store.BlogStore, defaults Defaults) *BlogService {
	logger := log.With().Str("serviceName", "blogService").Logger()

	return &BlogService{
		store:    blogStore,
		defaults: defaults,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns the full collection in insertion order. A store read failure
// degrades to an empty collection rather than surfacing an error; the fault
// is logged so it is not invisible to operators.
func (s *BlogService) List(ctx context.Context) []models.BlogPost {
	return s.loadLenient(ctx)
}

// GetBySlug scans the collection for a post with the given slug.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	for _, post := range s.loadLenient(ctx) {
		if post.Slug == slug {
			return post, nil
		}
	}
	return models.BlogPost{}, errs.NewNotFoundError("Blog post not found")
}

// Create validates the submission, assigns id, slug, publish date and read
// time, appends the record and persists the collection. A failed save
// discards the in-memory result; there is no retry.
func (s *BlogService) Create(ctx context.Context, sub models.BlogPostSubmission) (models.BlogPost, error) {
	normalized, vErr := ValidateSubmission(sub, s.defaults)
	if vErr != nil {
		return models.BlogPost{}, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.loadLenient(ctx)
	now := s.now()

	post := models.BlogPost{
		ID:          nextID(posts),
		Title:       normalized.Title,
		Slug:        DisambiguateSlug(GenerateSlug(normalized.Title), posts, 0, now),
		Excerpt:     normalized.Excerpt,
		Content:     normalized.Content,
		Author:      *normalized.Author,
		PublishDate: now.Format("2006-01-02"),
		ReadTime:    CalculateReadTime(normalized.Content),
		Tags:        normalized.Tags,
		Featured:    *normalized.Featured,
		Image:       *normalized.Image,
	}

	if err := s.store.SaveAll(ctx, append(posts, post)); err != nil {
		return models.BlogPost{}, err
	}

	s.logger.Info().Int("id", post.ID).Str("slug", post.Slug).Msg("created blog post")
	return post, nil
}

// Update replaces every field of the identified record except id and
// publishDate, recomputing slug and read time from the new values.
func (s *BlogService) Update(ctx context.Context, id int, sub models.BlogPostSubmission) (models.BlogPost, error) {
	normalized, vErr := ValidateSubmission(sub, s.defaults)
	if vErr != nil {
		return models.BlogPost{}, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.loadLenient(ctx)
	idx := indexByID(posts, id)
	if idx < 0 {
		return models.BlogPost{}, errs.NewNotFoundError("Blog post not found")
	}

	now := s.now()
	post := posts[idx]
	post.Title = normalized.Title
	post.Slug = DisambiguateSlug(GenerateSlug(normalized.Title), posts, id, now)
	post.Excerpt = normalized.Excerpt
	post.Content = normalized.Content
	post.Author = *normalized.Author
	post.ReadTime = CalculateReadTime(normalized.Content)
	post.Tags = normalized.Tags
	post.Featured = *normalized.Featured
	post.Image = *normalized.Image
	posts[idx] = post

	if err := s.store.SaveAll(ctx, posts); err != nil {
		return models.BlogPost{}, err
	}

	s.logger.Info().Int("id", post.ID).Str("slug", post.Slug).Msg("updated blog post")
	return post, nil
}

// Delete removes the identified record and returns it.
func (s *BlogService) Delete(ctx context.Context, id int) (models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.loadLenient(ctx)
	idx := indexByID(posts, id)
	if idx < 0 {
		return models.BlogPost{}, errs.NewNotFoundError("Blog post not found")
	}

	removed := posts[idx]
	remaining := append(posts[:idx:idx], posts[idx+1:]...)

	if err := s.store.SaveAll(ctx, remaining); err != nil {
		return models.BlogPost{}, err
	}

	s.logger.Info().Int("id", removed.ID).Str("slug", removed.Slug).Msg("deleted blog post")
	return removed, nil
}

func (s *BlogService) loadLenient(ctx context.Context) []models.BlogPost {
	posts, err := s.store.LoadAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read blog collection, treating it as empty")
		return []models.BlogPost{}
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	return posts
}

// nextID assigns 1 + max existing id, or 1 for an empty collection.
func nextID(posts []models.BlogPost) int {
	maxID := 0
	for _, post := range posts {
		if post.ID > maxID {
			maxID = post.ID
		}
	}
	return maxID + 1
}

func indexByID(posts []models.BlogPost, id int) int {
	for i, post := range posts {
		if post.ID == id {
			return i
		}
	}
	return -1
}

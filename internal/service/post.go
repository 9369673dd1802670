package service

import (
	"context"
	"errors"

	"github.com/micropost/micropost-go/internal/model"
	"github.com/micropost/micropost-go/internal/repository"
)

var (
	ErrTextRequired = errors.New("text is required")
	ErrPostNotFound = errors.New("post not found")
)

// PostService handles post business logic. Every operation is scoped to the
// calling user's id; posts belonging to anyone else are reported as missing.
type PostService struct {
	repo *repository.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(repo *repository.PostRepository) *PostService {
	return &PostService{repo: repo}
}

// Create stores a new post for the given owner.
func (s *PostService) Create(ctx context.Context, userID int64, req model.PostRequest) (model.PostResponse, error) {
	if req.Text == "" {
		return model.PostResponse{}, ErrTextRequired
	}

	post := model.Post{
		UserID: userID,
		Text:   req.Text,
	}

	if err := s.repo.Create(ctx, &post); err != nil {
		return model.PostResponse{}, err
	}

	return toResponse(post), nil
}

// List returns all posts owned by the given user.
func (s *PostService) List(ctx context.Context, userID int64) ([]model.PostResponse, error) {
	posts, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]model.PostResponse, len(posts))
	for i, p := range posts {
		result[i] = toResponse(p)
	}
	return result, nil
}

// Update replaces the text of a post owned by the given user.
func (s *PostService) Update(ctx context.Context, userID, postID int64, req model.PostRequest) (model.PostResponse, error) {
	if req.Text == "" {
		return model.PostResponse{}, ErrTextRequired
	}

	post, err := s.repo.UpdateText(ctx, userID, postID, req.Text)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	return toResponse(*post), nil
}

// Delete removes a post owned by the given user and returns the deleted record.
func (s *PostService) Delete(ctx context.Context, userID, postID int64) (model.PostResponse, error) {
	post, err := s.repo.Delete(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	return toResponse(*post), nil
}

func toResponse(p model.Post) model.PostResponse {
	return model.PostResponse{
		ID:     p.ID,
		UserID: p.UserID,
		Text:   p.Text,
	}
}

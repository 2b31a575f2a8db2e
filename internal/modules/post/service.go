package post

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyhub/internal/domain"
	"studyhub/internal/storage"
)

// FeedPageSize is the fixed number of posts returned per feed page.
const FeedPageSize = 5

// Comment fingerprints are client-side sha256 hex digests.
var fingerprintRe = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Service struct {
	posts  PostRepository
	groups GroupRepository
	quota  QuotaChecker
}

func NewService(posts PostRepository, groups GroupRepository, quota QuotaChecker) *Service {
	return &Service{posts: posts, groups: groups, quota: quota}
}

// ImageURL is the canonical API path for a stored post image.
func ImageURL(postIdx, filename string) string {
	return fmt.Sprintf("/api/v1/posts/%s/images/%s", postIdx, filename)
}

// Create runs the write pipeline for a new post: storage quota for the image
// bytes, database record first, then image commit, then a best-effort
// metadata update. A post must carry text content or at least one image.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreatePostRequest, images []*storage.StagedFile) (*domain.Post, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" && len(images) == 0 {
		return nil, ErrEmptyPost
	}

	var incoming int64
	for _, f := range images {
		incoming += f.Size
	}
	if incoming > 0 {
		if err := s.quota.CheckStorage(ctx, actor.Group, incoming); err != nil {
			return nil, err
		}
	}

	group, err := s.groups.GetByKey(ctx, actor.Group)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	idx := uuid.New().String()
	folder, err := storage.EntityFolder(group.StorageRoot, storage.KindPost, idx)
	if err != nil {
		return nil, err
	}

	p := &domain.Post{
		Idx:        idx,
		GroupKey:   actor.Group,
		CreatorIdx: actor.Idx,
		Content:    content,
		FolderPath: folder,
		Active:     true,
	}

	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}

	for _, staged := range images {
		committed, err := storage.Commit(staged, folder)
		if err != nil {
			return nil, fmt.Errorf("commit post image: %w", err)
		}
		p.Attachments = append(p.Attachments, domain.Attachment{
			ID:          committed.ID,
			Filename:    committed.Filename,
			DisplayName: staged.OriginalName,
			URL:         ImageURL(idx, committed.Filename),
			Original:    committed.Path,
		})
	}

	if len(images) > 0 {
		if err := s.posts.Update(ctx, p); err != nil {
			// Orphaned image files: the folder scan on first read recovers them.
			log.Printf("post: image metadata update failed for %s: %v", idx, err)
		}
	}

	return p, nil
}

// Feed returns one page of the group's posts, newest first. Teachers see
// every post, students only active ones. Image urls come from attachment
// records, migrating legacy folder listings once.
func (s *Service) Feed(ctx context.Context, actor domain.Actor, page int) ([]PostView, error) {
	visibleOnly := actor.Role != domain.RoleTeacher
	posts, err := s.posts.ListPage(ctx, actor.Group, visibleOnly, page, FeedPageSize)
	if err != nil {
		return nil, err
	}

	out := make([]PostView, 0, len(posts))
	for i := range posts {
		out = append(out, s.view(ctx, &posts[i], actor))
	}
	return out, nil
}

// Get returns one post of the actor's group; students only reach active
// posts.
func (s *Service) Get(ctx context.Context, actor domain.Actor, idx string) (*PostView, error) {
	p, err := s.lookup(ctx, actor, idx)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleTeacher && !p.Active {
		return nil, ErrNotFound
	}
	v := s.view(ctx, p, actor)
	return &v, nil
}

func (s *Service) lookup(ctx context.Context, actor domain.Actor, idx string) (*domain.Post, error) {
	if !domain.ValidIdx(idx) {
		return nil, ErrInvalidIdx
	}
	p, err := s.posts.GetByIdx(ctx, idx, actor.Group)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) view(ctx context.Context, p *domain.Post, actor domain.Actor) PostView {
	images := make([]PostImage, 0, len(p.Attachments))
	for _, a := range s.resolveImages(ctx, p) {
		images = append(images, PostImage{Name: a.DisplayName, URL: a.URL})
	}

	comments := make([]CommentView, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, CommentView{
			UserIdx:   c.UserIdx,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
		})
	}

	return PostView{
		Idx:        p.Idx,
		CreatorIdx: p.CreatorIdx,
		Content:    p.Content,
		Active:     p.Active,
		Images:     images,
		LikeCount:  len(p.Likes),
		Liked:      p.LikedBy(actor.Idx),
		Comments:   comments,
		CreatedAt:  p.CreatedAt,
	}
}

func (s *Service) resolveImages(ctx context.Context, p *domain.Post) []domain.Attachment {
	records, migrated, err := storage.ResolveAttachments(p.Attachments, p.FolderPath, func(filename string) string {
		return ImageURL(p.Idx, filename)
	})
	if err != nil {
		log.Printf("post: image scan failed for %s: %v", p.Idx, err)
		return p.Attachments
	}
	if migrated {
		p.Attachments = records
		if err := s.posts.Update(ctx, p); err != nil {
			log.Printf("post: image migration persist failed for %s: %v", p.Idx, err)
		}
	}
	return records
}

// Delete removes the post folder subtree first, then the record.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, idx string) error {
	p, err := s.lookup(ctx, actor, idx)
	if err != nil {
		return err
	}

	if err := storage.RemoveEntityFolder(p.FolderPath); err != nil {
		return fmt.Errorf("remove post folder: %w", err)
	}
	return s.posts.Delete(ctx, p)
}

// UpdateContent replaces the post text; only the creator may edit.
func (s *Service) UpdateContent(ctx context.Context, actor domain.Actor, idx string, req UpdatePostRequest) (*domain.Post, error) {
	p, err := s.lookup(ctx, actor, idx)
	if err != nil {
		return nil, err
	}
	if p.CreatorIdx != actor.Idx {
		return nil, ErrNotCreator
	}
	p.Content = strings.TrimSpace(req.Content)
	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ToggleLike adds or removes the actor's like and reports the new state.
func (s *Service) ToggleLike(ctx context.Context, actor domain.Actor, idx string) (liked bool, count int, err error) {
	p, err := s.lookup(ctx, actor, idx)
	if err != nil {
		return false, 0, err
	}

	if p.LikedBy(actor.Idx) {
		kept := p.Likes[:0]
		for _, l := range p.Likes {
			if l != actor.Idx {
				kept = append(kept, l)
			}
		}
		p.Likes = kept
	} else {
		p.Likes = append(p.Likes, actor.Idx)
		liked = true
	}

	if err := s.posts.Update(ctx, p); err != nil {
		return false, 0, err
	}
	return liked, len(p.Likes), nil
}

// Comment appends a comment. The fingerprint is the client's device hash and
// must be a sha256 hex digest.
func (s *Service) Comment(ctx context.Context, actor domain.Actor, idx string, req CommentRequest) (*domain.Post, error) {
	if !fingerprintRe.MatchString(req.Fingerprint) {
		return nil, ErrInvalidFingerprint
	}
	p, err := s.lookup(ctx, actor, idx)
	if err != nil {
		return nil, err
	}

	p.Comments = append(p.Comments, domain.Comment{
		UserIdx:     actor.Idx,
		Fingerprint: req.Fingerprint,
		Body:        req.Body,
		CreatedAt:   time.Now(),
	})
	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ImagePath resolves an image filename to its on-disk path for streaming.
// The join rejects any filename escaping the post folder.
func (s *Service) ImagePath(ctx context.Context, idx, filename string) (string, error) {
	if !domain.ValidIdx(idx) {
		return "", ErrInvalidIdx
	}
	p, err := s.posts.GetAny(ctx, idx)
	if err != nil {
		return "", ErrNotFound
	}
	return storage.Join(p.FolderPath, filename)
}

package userinfo

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"studyhub/internal/domain"
	"studyhub/internal/storage"
)

type Service struct {
	users  UserRepository
	groups GroupRepository
	quota  QuotaChecker
}

func NewService(users UserRepository, groups GroupRepository, quota QuotaChecker) *Service {
	return &Service{users: users, groups: groups, quota: quota}
}

// AvatarURL is the canonical API path for a user's avatar.
func AvatarURL(userIdx string) string {
	return fmt.Sprintf("/api/v1/users/%s/avatar", userIdx)
}

// StickerURL is the canonical API path for a user's photo sticker.
func StickerURL(userIdx string) string {
	return fmt.Sprintf("/api/v1/users/%s/sticker", userIdx)
}

func (s *Service) self(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	u, err := s.users.GetByIdx(ctx, actor.Idx, actor.Group)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// Get returns the actor's own profile.
func (s *Service) Get(ctx context.Context, actor domain.Actor) (*Profile, error) {
	u, err := s.self(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &Profile{
		Idx:         u.Idx,
		Account:     u.Account,
		Name:        u.Name,
		Role:        string(u.Role),
		Phone:       u.Phone,
		Address:     u.Address,
		MailAddress: u.MailAddress,
		AvatarURL:   u.AvatarURL,
		StickerURL:  u.StickerURL,
	}, nil
}

// UpdateProfile replaces the actor's profile details and, when a photo
// sticker is staged, swaps the sticker with replace semantics: the profile
// folder is rebuilt so exactly one file remains. The visitor demo account is
// read-only.
func (s *Service) UpdateProfile(ctx context.Context, actor domain.Actor, req UpdateProfileRequest, sticker *storage.StagedFile) (*Profile, error) {
	u, err := s.self(ctx, actor)
	if err != nil {
		return nil, err
	}
	if u.IsVisitor() {
		return nil, ErrVisitor
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	u.Phone = req.Phone
	u.Address = req.Address
	u.MailAddress = req.MailAddress

	if sticker != nil {
		path, err := s.replaceSlot(ctx, actor, storage.KindUserInfo, u.Idx, sticker)
		if err != nil {
			return nil, err
		}
		u.StickerPath = path
		u.StickerURL = StickerURL(u.Idx)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.Get(ctx, actor)
}

// UpdateAvatar swaps the actor's avatar with replace semantics: the icon
// folder is rebuilt so exactly one file remains.
func (s *Service) UpdateAvatar(ctx context.Context, actor domain.Actor, staged *storage.StagedFile) (*Profile, error) {
	if staged == nil {
		return nil, ErrNoFile
	}
	u, err := s.self(ctx, actor)
	if err != nil {
		return nil, err
	}
	if u.IsVisitor() {
		return nil, ErrVisitor
	}

	path, err := s.replaceSlot(ctx, actor, storage.KindUserIcon, u.Idx, staged)
	if err != nil {
		return nil, err
	}
	u.AvatarPath = path
	u.AvatarURL = AvatarURL(u.Idx)

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.Get(ctx, actor)
}

// replaceSlot commits a staged file into a rebuilt single-file entity
// folder: quota first, then remove the old folder, then commit.
func (s *Service) replaceSlot(ctx context.Context, actor domain.Actor, kind, idx string, staged *storage.StagedFile) (string, error) {
	if err := s.quota.CheckStorage(ctx, actor.Group, staged.Size); err != nil {
		return "", err
	}

	group, err := s.groups.GetByKey(ctx, actor.Group)
	if err != nil {
		return "", err
	}
	if group == nil {
		return "", ErrGroupNotFound
	}

	folder, err := storage.EntityFolder(group.StorageRoot, kind, idx)
	if err != nil {
		return "", err
	}
	if err := storage.RemoveEntityFolder(folder); err != nil {
		return "", fmt.Errorf("rebuild %s folder: %w", kind, err)
	}
	committed, err := storage.Commit(staged, folder)
	if err != nil {
		return "", fmt.Errorf("commit %s: %w", kind, err)
	}
	return committed.Path, nil
}

// AvatarPath resolves a user's avatar to its on-disk path for streaming.
// Legacy accounts whose avatar predates attachment metadata are resolved by
// scanning the icon folder once and persisting the result.
func (s *Service) AvatarPath(ctx context.Context, idx string) (string, error) {
	return s.slotPath(ctx, idx, storage.KindUserIcon, func(u *domain.User) string { return u.AvatarPath },
		func(u *domain.User, path string) {
			u.AvatarPath = path
			u.AvatarURL = AvatarURL(u.Idx)
		})
}

// StickerPath resolves a user's photo sticker the same way.
func (s *Service) StickerPath(ctx context.Context, idx string) (string, error) {
	return s.slotPath(ctx, idx, storage.KindUserInfo, func(u *domain.User) string { return u.StickerPath },
		func(u *domain.User, path string) {
			u.StickerPath = path
			u.StickerURL = StickerURL(u.Idx)
		})
}

func (s *Service) slotPath(ctx context.Context, idx, kind string, get func(*domain.User) string, set func(*domain.User, string)) (string, error) {
	if !domain.ValidIdx(idx) {
		return "", ErrInvalidIdx
	}
	u, err := s.users.GetAny(ctx, idx)
	if err != nil {
		return "", ErrNotFound
	}
	if p := get(u); p != "" {
		return p, nil
	}

	group, err := s.groups.GetByKey(ctx, u.GroupKey)
	if err != nil || group == nil {
		return "", ErrNotFound
	}
	folder, err := storage.EntityFolder(group.StorageRoot, kind, idx)
	if err != nil {
		return "", err
	}
	records, migrated, err := storage.ResolveAttachments(nil, folder, func(string) string { return "" })
	if err != nil || len(records) == 0 {
		return "", ErrNotFound
	}
	if migrated {
		set(u, records[0].Original)
		if err := s.users.Update(ctx, u); err != nil {
			log.Printf("userinfo: %s migration persist failed for %s: %v", kind, idx, err)
		}
	}
	return records[0].Original, nil
}

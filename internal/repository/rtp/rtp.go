package rtp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	cp "github.com/otiai10/copy"

	"github.com/oshokin/cia-forge/internal/domain/game"
)

// Repository resolves runtime package variants and stages their files.
type Repository interface {
	Codes() []string
	Resolve(code string, variant game.Variant) (*Match, error)
	CopyInto(ctx context.Context, match *Match, destination string) error
}

// Match is a resolved runtime package directory.
type Match struct {
	// Code is the variant code of the matched runtime package.
	Code string
	// Path is the directory holding the runtime package files.
	Path string
	// Fallback is true when the exact requested code was unavailable
	// and a same-variant substitute was chosen instead.
	Fallback bool
}

// ErrNoMatch is returned when no installed runtime package fits the game.
var ErrNoMatch = errors.New("no matching runtime package")

// universalCode is the EasyRPG RTP replacement, usable by either variant.
const universalCode = "easyrpg"

// DirRepository serves runtime packages from one directory per variant code.
type DirRepository struct {
	// root is the directory containing runtime package subdirectories.
	root string
	// dirs maps variant codes to their directories, filled on construction.
	dirs map[string]string
}

var _ Repository = (*DirRepository)(nil)

// NewDirRepository scans root for runtime package directories.
// A missing or empty root yields a repository with no codes, not an error:
// whether that matters depends on the games being built.
func NewDirRepository(root string) (*DirRepository, error) {
	repo := &DirRepository{
		root: root,
		dirs: make(map[string]string),
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return repo, nil
		}

		return nil, fmt.Errorf("read RTP directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			repo.dirs[entry.Name()] = filepath.Join(root, entry.Name())
		}
	}

	return repo, nil
}

// Codes returns the installed variant codes in sorted order.
func (r *DirRepository) Codes() []string {
	codes := make([]string, 0, len(r.dirs))
	for code := range r.dirs {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes
}

// Resolve picks the runtime package for a game. An exact code match wins;
// otherwise any package of the same engine variant is used, then the
// universal EasyRPG replacement. Substitutes are flagged as fallbacks.
func (r *DirRepository) Resolve(code string, variant game.Variant) (*Match, error) {
	if code != "" {
		if path, ok := r.dirs[code]; ok {
			return &Match{Code: code, Path: path}, nil
		}
	}

	prefix := string(variant) + "-"
	if variant != game.VariantUnknown {
		for _, candidate := range r.Codes() {
			if strings.HasPrefix(candidate, prefix) {
				return &Match{
					Code:     candidate,
					Path:     r.dirs[candidate],
					Fallback: code != "",
				}, nil
			}
		}
	}

	if path, ok := r.dirs[universalCode]; ok {
		return &Match{Code: universalCode, Path: path, Fallback: code != ""}, nil
	}

	return nil, fmt.Errorf("%w: wanted %q for variant %q", ErrNoMatch, code, variant)
}

// CopyInto copies every runtime package file into the destination directory.
// Files already present in the destination are left untouched: game-provided
// assets always win over runtime package defaults.
func (r *DirRepository) CopyInto(_ context.Context, match *Match, destination string) error {
	options := cp.Options{
		OnDirExists: func(_, _ string) cp.DirExistsAction {
			return cp.Merge
		},
		Skip: func(info os.FileInfo, _, dest string) (bool, error) {
			if info.IsDir() {
				return false, nil
			}

			if _, err := os.Lstat(dest); err == nil {
				return true, nil
			} else if !errors.Is(err, fs.ErrNotExist) {
				return false, err
			}

			return false, nil
		},
	}

	if err := cp.Copy(match.Path, destination, options); err != nil {
		return fmt.Errorf("copy runtime package %s: %w", match.Code, err)
	}

	return nil
}

package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/voxelspace/mgcbgen/internal/domain"
	"github.com/voxelspace/mgcbgen/internal/utils"
)

// Scanner enumerates the files under a content root
type Scanner struct {
	root   string
	order  domain.Order
	mode   domain.PathMode
	logger *utils.Logger
}

// Options contains options for the scanner
type Options struct {
	Root     string
	Order    domain.Order
	PathMode domain.PathMode
	Logger   *utils.Logger
}

// New creates a new scanner
func New(opts Options) *Scanner {
	if opts.Order == "" {
		opts.Order = domain.OrderFilesystem
	}
	if opts.PathMode == "" {
		opts.PathMode = domain.PathModeLiteral
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	return &Scanner{
		root:   opts.Root,
		order:  opts.Order,
		mode:   opts.PathMode,
		logger: opts.Logger.WithComponent("scanner"),
	}
}

// Root returns the content root
func (s *Scanner) Root() string {
	return s.root
}

// Walk visits every file under the root, top-down. All files of a
// directory are reported before any of its subdirectories is entered.
// Symlinked directories are not descended into.
func (s *Scanner) Walk(ctx context.Context, fn func(domain.AssetFile) error) error {
	info, err := os.Stat(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrContentRootNotFound, s.root)
		}
		return domain.NewTraversalError(s.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrContentRootNotDir, s.root)
	}

	return s.walkDir(ctx, s.root, fn)
}

func (s *Scanner) walkDir(ctx context.Context, dir string, fn func(domain.AssetFile) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := s.readDir(dir)
	if err != nil {
		return domain.NewTraversalError(dir, err)
	}
	s.logger.Debug().Str("dir", dir).Int("entries", len(entries)).Msg("Reading directory")

	var subdirs []string
	for _, entry := range entries {
		full := Join(dir, entry.Name())

		switch {
		case entry.IsDir():
			subdirs = append(subdirs, full)
		case entry.Type()&fs.ModeSymlink != 0 && isDirLink(full):
			s.logger.Debug().Str("path", full).Msg("Not following directory symlink")
		default:
			if err := fn(domain.AssetFile{Path: full, Rel: s.Relative(full)}); err != nil {
				return err
			}
		}
	}

	for _, sub := range subdirs {
		if err := s.walkDir(ctx, sub, fn); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) readDir(dir string) ([]fs.DirEntry, error) {
	if s.order == domain.OrderLexical {
		return os.ReadDir(dir)
	}

	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

// Relative returns the path of full relative to the scanner's root,
// according to its path mode.
func (s *Scanner) Relative(full string) string {
	if s.mode == domain.PathModeRelative {
		rel, err := filepath.Rel(s.root, full)
		if err != nil {
			return full
		}
		return rel
	}
	return StripLiteral(full, s.root)
}

// StripLiteral removes every occurrence of root from path. When root
// recurs inside path the result loses more than the leading prefix.
func StripLiteral(path, root string) string {
	if root == "" {
		return path
	}
	return strings.ReplaceAll(path, root, "")
}

// Join appends name to dir, adding a separator only when dir does not
// already end with one. Neither part is cleaned.
func Join(dir, name string) string {
	if dir == "" {
		return name
	}
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

func isDirLink(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

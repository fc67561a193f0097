// Package randtree generates random nested directory structures for exercising the mirror.
package randtree

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	derrors "github.com/Jumpaku/go-drivemirror/errors"
	"github.com/sirupsen/logrus"
)

const (
	nameAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	defaultNameLength = 10
	defaultContent    = "This is a random file"
	maxNameAttempts   = 16
	defaultDirPerm    = 0o755
	defaultFilePerm   = 0o644
)

// Options controls Generate.
type Options struct {
	// Files and Folders are created at every level.
	Files   int
	Folders int
	// Depth is the number of levels below root that receive their own files and folders.
	Depth int
	// NameLength is the length of generated names, 10 when zero.
	NameLength int
	// Content is written to every file, "This is a random file" when nil.
	Content []byte
	// Rand is the randomness source, seeded from the clock when nil.
	Rand *rand.Rand
	// Logger receives one entry per created item, logrus.StandardLogger() when nil.
	Logger logrus.FieldLogger
}

// Stats counts what Generate created.
type Stats struct {
	Files   int
	Folders int
}

// Generate creates opts.Files files and opts.Folders folders in root, then recurses with depth-1
// into each folder it just created. Folders created at depth 0 stay empty.
func Generate(root string, opts Options) (stats Stats, err error) {
	if opts.Files < 0 || opts.Folders < 0 || opts.Depth < 0 || opts.NameLength < 0 {
		return Stats{}, fmt.Errorf("negative count in %+v: %w", opts, derrors.ErrInvalidArgument)
	}
	if opts.NameLength == 0 {
		opts.NameLength = defaultNameLength
	}
	if opts.Content == nil {
		opts.Content = []byte(defaultContent)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	info, err := os.Stat(root)
	if err != nil {
		return Stats{}, derrors.NewIOError(fmt.Sprintf("failed to stat '%s'", root), err)
	}
	if !info.IsDir() {
		return Stats{}, fmt.Errorf("'%s' is not a directory: %w", root, derrors.ErrInvalidPath)
	}

	g := generator{opts: opts}
	if err := g.level(root, opts.Depth); err != nil {
		return g.stats, err
	}
	return g.stats, nil
}

type generator struct {
	opts  Options
	stats Stats
}

func (g *generator) level(dir string, depth int) error {
	for i := 0; i < g.opts.Files; i++ {
		if err := g.file(dir); err != nil {
			return err
		}
	}

	created := make([]string, 0, g.opts.Folders)
	for i := 0; i < g.opts.Folders; i++ {
		folder, err := g.folder(dir)
		if err != nil {
			return err
		}
		created = append(created, folder)
	}

	if depth == 0 {
		return nil
	}
	for _, folder := range created {
		if err := g.level(folder, depth-1); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) file(dir string) error {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		p := filepath.Join(dir, g.name())
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_EXCL, defaultFilePerm)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return derrors.NewIOError(fmt.Sprintf("failed to create file '%s'", p), err)
		}
		_, werr := f.Write(g.opts.Content)
		cerr := f.Close()
		if err := errors.Join(werr, cerr); err != nil {
			return derrors.NewIOError(fmt.Sprintf("failed to write file '%s'", p), err)
		}
		g.stats.Files++
		g.opts.Logger.WithField("file", p).Debug("Random file created")
		return nil
	}
	return fmt.Errorf("no free file name in '%s': %w", dir, derrors.ErrAlreadyExists)
}

func (g *generator) folder(dir string) (string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		p := filepath.Join(dir, g.name())
		err := os.Mkdir(p, defaultDirPerm)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", derrors.NewIOError(fmt.Sprintf("failed to create folder '%s'", p), err)
		}
		g.stats.Folders++
		g.opts.Logger.WithField("folder", p).Debug("Random folder created")
		return p, nil
	}
	return "", fmt.Errorf("no free folder name in '%s': %w", dir, derrors.ErrAlreadyExists)
}

func (g *generator) name() string {
	b := make([]byte, g.opts.NameLength)
	for i := range b {
		b[i] = nameAlphabet[g.opts.Rand.Intn(len(nameAlphabet))]
	}
	return string(b)
}

// Expected returns the totals Generate produces for opts.
func Expected(opts Options) Stats {
	var stats Stats
	dirs := 1
	for level := 0; level <= opts.Depth; level++ {
		stats.Files += dirs * opts.Files
		stats.Folders += dirs * opts.Folders
		dirs *= opts.Folders
	}
	return stats
}

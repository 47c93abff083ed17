// Package compose drives a full pass over one or many documents: parse the
// JSON content tree, resolve styles against the configured sheet, collect
// resources and hand everything to the renderer.
package compose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"press/cascade"
	"press/config"
	"press/doc"
	"press/render"
	"press/resources"
	"press/state"
	"press/style"
)

const sourceExt = ".json"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compose")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	if path := cmd.String("stylesheet"); len(path) > 0 {
		env.Cfg.Document.StylesheetPath = path
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process handles the core logic independently of CLI framework. It accepts
// either a single document file or a directory tree of them.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if fi.Mode().IsDir() {
		return processDir(ctx, src, dst, log)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}

	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open input source: %w", err)
	}
	defer file.Close()

	return composeDocument(ctx, file, filepath.Base(src), dst, log)
}

// processDir walks directory tree finding document files and processes them.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), sourceExt) {
			log.Debug("Skipping file, not recognized as document source", zap.String("file", path))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := composeDocument(ctx, file, src, dst, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// composeDocument processes a single document. "src" is the source path
// relative to the original input (always including the file name), "dst" is
// the destination directory for the rendered output.
func composeDocument(ctx context.Context, r io.Reader, src, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var refID, outputName string

	log.Info("Composition starting", zap.String("from", src))
	defer func(start time.Time) {
		// keep going when one document out of many blows up
		if r := recover(); r != nil {
			log.Error("Composition ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("composition panic: %v", r)
		} else {
			log.Info("Composition completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("ref_id", refID))
		}
	}(time.Now())

	d, err := doc.ParseDocumentJSON(r, doc.ParseOptions{
		DefaultTitle:         env.Cfg.Document.DefaultTitle,
		DefaultFootnoteIndex: env.Cfg.Document.Footnotes.DefaultIndex,
	}, log)
	if err != nil {
		return fmt.Errorf("unable to parse document source (%s): %w", src, err)
	}

	// Make sure document ID is not empty and is valid UUID
	if _, err := uuid.Parse(d.Meta.ID); err != nil {
		newID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("unable to generate new document UUID: %w", err)
		}
		log.Warn("Document has invalid ID, correcting", zap.String("old_id", d.Meta.ID), zap.Stringer("new_id", newID))
		d.Meta.ID = newID.String()
	}
	refID = d.Meta.ID

	sheet, err := loadSheet(env.Cfg.Document.StylesheetPath)
	if err != nil {
		return err
	}

	res := cascade.NewResolver(log).Resolve(d, sheet)
	assets := resources.Collect(d.Addresses, &env.Cfg.Document.Resources, log)

	if err := storeDump(env.Rpt, env.Cfg.Document.Dump, d, res); err != nil {
		return err
	}

	outputName = buildOutputPath(d, src, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	out, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer out.Close()

	if err := render.NewTextRenderer().Render(ctx, d, res, assets, out); err != nil {
		return fmt.Errorf("unable to render document: %w", err)
	}

	// Store rendering result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", refID, filepath.Ext(outputName)), outputName)
	}

	return nil
}

func loadSheet(path string) (*style.Sheet, error) {
	if path == "" {
		return style.DefaultSheet()
	}
	return style.LoadSheetFile(path)
}

// storeDump saves the requested debug view of the resolved document into the
// report archive.
func storeDump(rpt *config.Report, format config.DumpFmt, d *doc.Document, res cascade.Resolution) error {
	if rpt == nil || format == config.DumpFmtNone {
		return nil
	}
	name := "resolved-" + d.Meta.ID + format.Ext()
	switch format {
	case config.DumpFmtText:
		rpt.StoreData(name, []byte(d.String()))
	case config.DumpFmtXML:
		data, err := res.DebugXML(d)
		if err != nil {
			return fmt.Errorf("unable to dump resolution: %w", err)
		}
		rpt.StoreData(name, []byte(data))
	}
	return nil
}

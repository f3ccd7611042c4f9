package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"

	"github.com/projecteru2/nsuuid/deriver"
	"github.com/projecteru2/nsuuid/source"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Print the identifier of FILE and again whenever its content changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	d, err := initDeriver()
	if err != nil {
		return err
	}
	return watchFile(ctx, d, args[0], cmd.OutOrStdout())
}

// watchFile derives path once, then re-derives on every change event until
// ctx is done. The parent directory is watched so that editors replacing the
// file by rename are noticed. Only changed identifiers are printed.
func watchFile(ctx context.Context, d *deriver.Deriver, path string, out io.Writer) error {
	logger := log.WithFunc("cmd.watch")
	path = filepath.Clean(path)
	opts := deriver.Options{Source: source.File(path)}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close() //nolint:errcheck
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	last := ""
	emit := func() error {
		id, err := d.Derive(ctx, opts)
		if err != nil {
			return err
		}
		if id.ID == last {
			return nil
		}
		last = id.ID
		line, err := formatIdentifier(id, conf.Format)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, line)
		return err
	}
	if err := emit(); err != nil {
		return fmt.Errorf("derive: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := emit(); err != nil {
				if errors.Is(err, source.ErrNotFound) {
					logger.Infof(ctx, "%s is gone, waiting for it to reappear", path)
					continue
				}
				return fmt.Errorf("derive: %w", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warnf(ctx, "watch %s: %v", path, err)
		}
	}
}

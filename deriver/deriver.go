// Package deriver turns validated Options into identifier records: it reads
// the name bytes, derives the version 5 UUID and describes the result.
package deriver

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/projecteru2/core/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/projecteru2/nsuuid/config"
	"github.com/projecteru2/nsuuid/digest"
	"github.com/projecteru2/nsuuid/source"
	"github.com/projecteru2/nsuuid/types"
	"github.com/projecteru2/nsuuid/uuidv5"
)

// Deriver is safe for concurrent use.
type Deriver struct {
	reader    *source.Reader
	namespace uuid.UUID
	layout    uuidv5.Layout
	poolSize  int
	fileGroup singleflight.Group
	now       func() time.Time
}

// New builds a Deriver from configuration. Extra source options are applied
// after the ones derived from conf.
func New(conf *config.Config, opts ...source.Option) (*Deriver, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is nil")
	}
	nsLayout, err := uuidv5.ParseLayout(conf.NamespaceLayout)
	if err != nil {
		return nil, fmt.Errorf("namespace_layout: %w", err)
	}
	ns, err := uuidv5.ParseNamespaceLayout(conf.Namespace, nsLayout)
	if err != nil {
		return nil, err
	}
	layout, err := uuidv5.ParseLayout(conf.Layout)
	if err != nil {
		return nil, err
	}
	maxSize, err := conf.MaxNameBytes()
	if err != nil {
		return nil, err
	}
	srcOpts := append([]source.Option{
		source.WithDecodeText(conf.DecodeText),
		source.WithMaxSize(maxSize),
	}, opts...)
	return &Deriver{
		reader:    source.New(srcOpts...),
		namespace: ns,
		layout:    layout,
		poolSize:  conf.PoolSize,
		now:       time.Now,
	}, nil
}

// Namespace returns the default namespace.
func (d *Deriver) Namespace() uuid.UUID { return d.namespace }

// Layout returns the native layout used for records.
func (d *Deriver) Layout() uuidv5.Layout { return d.layout }

// Derive reads the name for opts and derives its identifier. No record is
// returned on error.
func (d *Deriver) Derive(ctx context.Context, opts Options) (*types.Identifier, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	ns := d.namespace
	if opts.Namespace != nil {
		ns = *opts.Namespace
	}

	name, err := d.readName(ctx, opts.Source)
	if err != nil {
		return nil, err
	}

	// Derivation runs in the record layout so Native comes straight from it.
	native, err := uuidv5.DeriveNative(uuidv5.FromNetworkOrder(ns, d.layout), d.layout, name)
	if err != nil {
		return nil, fmt.Errorf("derive %s: %w", opts.Source, err)
	}
	id := uuidv5.ToNetworkOrder(native, d.layout)
	log.WithFunc("deriver.Derive").Debugf(ctx, "%s in %s -> %s (%d bytes)", opts.Source, ns, id, len(name))
	return d.describe(ns, id, native, opts.Source, name), nil
}

// DeriveAll derives every entry of opts, at most poolSize at a time. Results
// keep the order of opts. The first error cancels the remaining work.
func (d *Deriver) DeriveAll(ctx context.Context, opts []Options) ([]*types.Identifier, error) {
	results := make([]*types.Identifier, len(opts))
	g, ctx := errgroup.WithContext(ctx)
	if d.poolSize > 0 {
		g.SetLimit(d.poolSize)
	}
	for i, o := range opts {
		i, o := i, o
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := d.Derive(ctx, o)
			if err != nil {
				return err
			}
			results[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// readName collapses concurrent reads of the same file into one.
func (d *Deriver) readName(ctx context.Context, src source.Source) ([]byte, error) {
	if src.Path == "" || src.Path == source.StdinPath {
		return d.reader.Read(ctx, src)
	}
	v, err, _ := d.fileGroup.Do(src.Path, func() (any, error) {
		return d.reader.Read(ctx, src)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (d *Deriver) describe(ns, id uuid.UUID, native [16]byte, src source.Source, name []byte) *types.Identifier {
	return &types.Identifier{
		ID:        id.String(),
		Namespace: ns.String(),
		Version:   int(id.Version()),
		Variant:   id.Variant().String(),
		Source:    src.String(),
		Size:      int64(len(name)),
		Digest:    digest.FromBytes(name).String(),
		Native:    hex.EncodeToString(native[:]),
		Layout:    string(d.layout),
		CreatedAt: d.now().UTC(),
	}
}

package archive

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/platinummonkey/mallard/pkg/catalog"
	"github.com/platinummonkey/mallard/pkg/observability"
)

const (
	defaultNegativeCacheSize = 1024
	defaultNegativeCacheTTL  = 30 * time.Second

	snapshotTag = "SNAPSHOT"

	// How long a replaced snapshot handle stays open after a refresh so
	// in-flight reads can finish streaming from it.
	handleCloseGrace = time.Minute
)

type key struct {
	project string
	version string
}

func (k key) String() string {
	return k.project + "/" + k.version
}

// Provider owns the lifecycle of mounted archives. Each distinct
// (project, version) is opened at most once and the handle is held for
// the process lifetime; request handlers only read. Lookups that find
// no published archive are remembered briefly in a TTL'd negative
// cache so repeated requests for missing versions do not hammer the
// source.
type Provider struct {
	source  Source
	logger  *observability.Logger
	metrics *observability.Metrics

	mu      sync.RWMutex
	handles map[key]*zipArchive

	group   singleflight.Group
	missing *lru.LRU[string, time.Time]
}

// ProviderOption configures a Provider
type ProviderOption func(*Provider)

// WithLogger sets the provider's logger
func WithLogger(logger *observability.Logger) ProviderOption {
	return func(p *Provider) { p.logger = logger }
}

// WithMetrics enables archive metrics
func WithMetrics(metrics *observability.Metrics) ProviderOption {
	return func(p *Provider) { p.metrics = metrics }
}

// WithNegativeCache overrides the negative cache size and TTL
func WithNegativeCache(size int, ttl time.Duration) ProviderOption {
	return func(p *Provider) {
		p.missing = lru.NewLRU[string, time.Time](size, nil, ttl)
	}
}

// NewProvider creates a provider backed by source.
func NewProvider(source Source, opts ...ProviderOption) *Provider {
	p := &Provider{
		source:  source,
		logger:  observability.NewLogger(observability.InfoLevel, os.Stdout),
		handles: make(map[key]*zipArchive),
		missing: lru.NewLRU[string, time.Time](defaultNegativeCacheSize, nil, defaultNegativeCacheTTL),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ContentsFor returns the mounted tree for the exact (project, version)
// key, or false when no archive is published for it. The first call for
// a key fetches and mounts the archive; concurrent first calls are
// collapsed into a single open.
func (p *Provider) ContentsFor(ctx context.Context, project, version string) (Archive, bool) {
	k := key{project: project, version: version}

	p.mu.RLock()
	handle, ok := p.handles[k]
	p.mu.RUnlock()
	if ok {
		if p.metrics != nil {
			p.metrics.ArchiveCacheHitsTotal.Inc()
		}
		return handle, true
	}

	if _, absent := p.missing.Get(k.String()); absent {
		if p.metrics != nil {
			p.metrics.ArchiveNegativeHitsTotal.Inc()
		}
		return nil, false
	}

	if p.metrics != nil {
		p.metrics.ArchiveCacheMissesTotal.Inc()
	}

	v, err, _ := p.group.Do(k.String(), func() (interface{}, error) {
		// Re-check under the flight: a concurrent caller may have won.
		p.mu.RLock()
		handle, ok := p.handles[k]
		p.mu.RUnlock()
		if ok {
			return handle, nil
		}
		return p.open(ctx, k)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			p.missing.Add(k.String(), time.Now())
		} else {
			p.logger.WithError(err).WithFields(map[string]interface{}{
				"project": project,
				"version": version,
			}).Error("Failed to mount archive")
		}
		if p.metrics != nil {
			p.metrics.ArchiveOpensTotal.WithLabelValues("error").Inc()
		}
		return nil, false
	}

	return v.(*zipArchive), true
}

func (p *Provider) open(ctx context.Context, k key) (*zipArchive, error) {
	local, err := p.source.Fetch(ctx, k.project, k.version)
	if err != nil {
		return nil, err
	}
	handle, err := openZip(local)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.handles[k] = handle
	open := len(p.handles)
	p.mu.Unlock()

	if p.metrics != nil {
		p.metrics.ArchiveOpensTotal.WithLabelValues("ok").Inc()
		p.metrics.ArchivesOpen.Set(float64(open))
	}
	p.logger.WithFields(map[string]interface{}{
		"project": k.project,
		"version": k.version,
	}).Info("Archive mounted")

	return handle, nil
}

// Warm pre-mounts archives for every version in the catalog so the
// first request for each does not pay the open cost. Missing archives
// are skipped; they may simply not be published yet.
func (p *Provider) Warm(ctx context.Context, cat *catalog.Catalog) {
	for _, project := range cat.Projects {
		for _, group := range project.Groups {
			for _, version := range group.Versions {
				if ctx.Err() != nil {
					return
				}
				p.ContentsFor(ctx, strings.ToLower(project.Name), version.Name)
			}
		}
	}
}

// RefreshSnapshots re-fetches and remounts every open archive whose
// version carries a snapshot tag. Snapshots are republished upstream in
// place; release archives are immutable and stay untouched.
func (p *Provider) RefreshSnapshots(ctx context.Context) {
	p.mu.RLock()
	keys := make([]key, 0)
	for k := range p.handles {
		if strings.Contains(k.version, snapshotTag) {
			keys = append(keys, k)
		}
	}
	p.mu.RUnlock()

	for _, k := range keys {
		if err := p.refresh(ctx, k); err != nil {
			p.logger.WithError(err).WithFields(map[string]interface{}{
				"project": k.project,
				"version": k.version,
			}).Warn("Snapshot refresh failed, keeping previous archive")
			if p.metrics != nil {
				p.metrics.SnapshotRefreshTotal.WithLabelValues("error").Inc()
			}
			continue
		}
		if p.metrics != nil {
			p.metrics.SnapshotRefreshTotal.WithLabelValues("ok").Inc()
		}
	}
}

func (p *Provider) refresh(ctx context.Context, k key) error {
	if err := p.source.Refresh(ctx, k.project, k.version); err != nil {
		return err
	}
	local, err := p.source.Fetch(ctx, k.project, k.version)
	if err != nil {
		return err
	}
	handle, err := openZip(local)
	if err != nil {
		return err
	}

	p.mu.Lock()
	old := p.handles[k]
	p.handles[k] = handle
	p.mu.Unlock()

	if old != nil {
		time.AfterFunc(handleCloseGrace, func() {
			if err := old.close(); err != nil {
				p.logger.WithError(err).WithFields(map[string]interface{}{
					"project": k.project,
					"version": k.version,
				}).Warn("Failed to close replaced snapshot archive")
			}
		})
	}

	p.logger.WithFields(map[string]interface{}{
		"project": k.project,
		"version": k.version,
	}).Info("Snapshot archive refreshed")
	return nil
}

// ScheduleSnapshotRefresh starts a cron schedule (e.g. "@every 10m")
// that refreshes snapshot archives. The returned cron runner should be
// stopped during shutdown.
func (p *Provider) ScheduleSnapshotRefresh(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		p.RefreshSnapshots(context.Background())
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

// Close unmounts all open archives. Only called at process shutdown.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for k, handle := range p.handles {
		if err := handle.close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.handles, k)
	}
	return firstErr
}

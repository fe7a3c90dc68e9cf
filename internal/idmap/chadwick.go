package idmap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pable/go-mlb-hits/internal/dataset"
	"github.com/pable/go-mlb-hits/internal/model"
)

// Register column names in the Chadwick Bureau people files.
const (
	registerMLBAM     = "key_mlbam"
	registerFangraphs = "key_fangraphs"
)

// registerBase hosts the register, split into people-0.csv ... people-f.csv.
const registerBase = "https://raw.githubusercontent.com/chadwickbureau/register/master/data/"

// ErrRegisterUnavailable is returned when no register chunk could be read.
var ErrRegisterUnavailable = errors.New("idmap: player register unavailable")

// DefaultRegisterURLs lists the sixteen people chunks of the Chadwick register.
func DefaultRegisterURLs() []string {
	const hex = "0123456789abcdef"
	out := make([]string, 0, len(hex))
	for _, c := range hex {
		out = append(out, fmt.Sprintf("%speople-%c.csv", registerBase, c))
	}
	return out
}

// ChadwickResolver looks identifiers up in the Chadwick Bureau register over
// HTTP. It makes one pass over the chunks with no retries; a chunk that fails
// is logged and skipped.
type ChadwickResolver struct {
	urls []string
	http *http.Client
	log  *zap.Logger
}

// NewChadwickResolver returns a resolver over urls (DefaultRegisterURLs when
// empty). A zero timeout leaves requests unbounded.
func NewChadwickResolver(urls []string, timeout time.Duration, log *zap.Logger) *ChadwickResolver {
	if len(urls) == 0 {
		urls = DefaultRegisterURLs()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ChadwickResolver{urls: urls, http: &http.Client{Timeout: timeout}, log: log}
}

// Resolve implements Resolver.
func (c *ChadwickResolver) Resolve(ctx context.Context, ids []model.SourceID) (map[model.SourceID]model.TargetID, error) {
	want := idSet(ids)
	out := make(map[model.SourceID]model.TargetID, len(ids))
	failed := 0
	for _, u := range c.urls {
		if len(out) == len(want) {
			break
		}
		f, err := c.fetch(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failed++
			c.log.Warn("register chunk skipped", zap.String("url", u), zap.Error(err))
			continue
		}
		matchRegister(f, want, out)
	}
	if failed == len(c.urls) {
		return nil, ErrRegisterUnavailable
	}
	c.log.Debug("register lookup done",
		zap.Int("requested", len(want)), zap.Int("resolved", len(out)), zap.Int("failed_chunks", failed))
	return out, nil
}

func (c *ChadwickResolver) fetch(ctx context.Context, u string) (*dataset.Frame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return dataset.Read(resp.Body)
}

// RegisterFileResolver resolves against a local copy of the register.
type RegisterFileResolver struct {
	Path string
}

// Resolve implements Resolver.
func (r RegisterFileResolver) Resolve(_ context.Context, ids []model.SourceID) (map[model.SourceID]model.TargetID, error) {
	f, err := dataset.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read register: %w", err)
	}
	out := make(map[model.SourceID]model.TargetID, len(ids))
	matchRegister(f, idSet(ids), out)
	return out, nil
}

// matchRegister copies register rows whose MLBAM key is wanted and whose
// FanGraphs key is present into out.
func matchRegister(f *dataset.Frame, want map[model.SourceID]struct{}, out map[model.SourceID]model.TargetID) {
	if !f.Has(registerMLBAM) || !f.Has(registerFangraphs) {
		return
	}
	for i := range f.Rows {
		src := model.ParseSourceID(f.Get(i, registerMLBAM))
		if _, ok := want[src]; !ok {
			continue
		}
		tgt := model.ParseTargetID(f.Get(i, registerFangraphs))
		if tgt.IsZero() || tgt == "-1" {
			continue
		}
		out[src] = tgt
	}
}

func idSet(ids []model.SourceID) map[model.SourceID]struct{} {
	set := make(map[model.SourceID]struct{}, len(ids))
	for _, id := range ids {
		if !id.IsZero() {
			set[id] = struct{}{}
		}
	}
	return set
}

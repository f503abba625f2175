package resources

import (
	"context"
	"fmt"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/font"
)

// NotFound returns an application error for a missing font.
func NotFound(name string) error {
	e := fmt.Errorf("resource missing: %v", name)
	return core.WrapError(e, core.EMISSING, "music font not found: %s", name)
}

type metricsPlusErr struct {
	metrics font.Metrics
	err     error
}

// MetricsPromise delivers the metrics of a music font once it is loaded.
type MetricsPromise interface {
	Metrics() (font.Metrics, error)
	Await(ctx context.Context) (font.Metrics, error)
}

// metricsLoader holds the result of a resolver goroutine. done is closed
// after result has been set.
type metricsLoader struct {
	done   chan struct{}
	result metricsPlusErr
}

func (loader *metricsLoader) Metrics() (font.Metrics, error) {
	return loader.Await(context.Background())
}

func (loader *metricsLoader) Await(ctx context.Context) (font.Metrics, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-loader.done:
		return loader.result.metrics, loader.result.err
	}
}

// ResolveMusicFont resolves the metrics of a SMuFL font. name may be a font
// already stored in the registry, a path to a font file or the name of a
// font installed in the user's or the system's font directories. Loaded
// fonts are stored in the registry.
//
// If the font cannot be found or parsed, the built-in metrics are delivered
// together with the error. Every call of Metrics or Await delivers the same
// result.
func ResolveMusicFont(reg *font.Registry, name string, u font.Units) MetricsPromise {
	if reg == nil {
		reg = font.GlobalRegistry()
	}
	loader := &metricsLoader{done: make(chan struct{})}
	go func() {
		defer close(loader.done)
		loader.result = resolve(reg, name, u)
	}()
	return loader
}

func resolve(reg *font.Registry, name string, u font.Units) metricsPlusErr {
	if m, err := reg.Metrics(name, u); err == nil {
		return metricsPlusErr{metrics: m}
	}
	fpath, err := findfont.Find(name) // a path or an installed font
	if err != nil || fpath == "" {
		tracer().Errorf("cannot locate music font %s: %v", name, err)
		return metricsPlusErr{font.NewStaticMetrics(u), NotFound(name)}
	}
	tracer().Debugf("music font %s is %s", name, fpath)
	f, err := font.LoadSMuFLFont(fpath)
	if err != nil {
		return metricsPlusErr{font.NewStaticMetrics(u), err}
	}
	m := font.NewSFNTMetrics(f, u)
	reg.Store(name, m)
	return metricsPlusErr{metrics: m}
}

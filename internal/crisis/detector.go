package crisis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-care/internal/metrics"
)

type Mode string

const (
	ModeKeyword          Mode = "keyword"
	ModeModel            Mode = "model"
	ModeKeywordThenModel Mode = "keyword_then_model"
)

type Source string

const (
	SourceKeyword Source = "keyword"
	SourceModel   Source = "model"
	SourceNone    Source = "none"
)

// ErrUnknownProvider 指定的供應商未設定金鑰或不存在
var ErrUnknownProvider = errors.New("crisis: provider not configured")

// Result 危機判定結果
type Result struct {
	Crisis bool   `json:"crisis"`
	Source Source `json:"source"`
}

// Detector 依模式組合關鍵字與模型判定
type Detector struct {
	mode            Mode
	providers       map[string]Completer
	defaultProvider string
	timeout         time.Duration
}

func NewDetector(mode Mode, providers map[string]Completer, defaultProvider string, timeout time.Duration) *Detector {
	if providers == nil {
		providers = map[string]Completer{}
	}
	return &Detector{
		mode:            mode,
		providers:       providers,
		defaultProvider: strings.ToLower(defaultProvider),
		timeout:         timeout,
	}
}

func (d *Detector) Mode() Mode { return d.mode }

// Provider 取得指定供應商，name 為空時使用預設值
func (d *Detector) Provider(name string) (Completer, error) {
	if name == "" {
		name = d.defaultProvider
	}
	c, ok := d.providers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return c, nil
}

// Detect 依模式判定 text；provider 僅在需要模型時使用
func (d *Detector) Detect(ctx context.Context, text, provider string) (Result, error) {
	if d.mode != ModeModel && ContainsCrisisKeywords(text) {
		return d.record(Result{Crisis: true, Source: SourceKeyword}), nil
	}
	if d.mode == ModeKeyword {
		return d.record(Result{Crisis: false, Source: SourceNone}), nil
	}

	c, err := d.Provider(provider)
	if err != nil {
		return Result{}, err
	}
	crisis, err := NewClassifier(c, d.timeout).IsCrisis(ctx, text)
	if err != nil {
		metrics.CrisisChecks.WithLabelValues(string(SourceModel), "error").Inc()
		return Result{}, err
	}
	if !crisis {
		return d.record(Result{Crisis: false, Source: SourceNone}), nil
	}
	return d.record(Result{Crisis: true, Source: SourceModel}), nil
}

func (d *Detector) record(r Result) Result {
	metrics.CrisisChecks.WithLabelValues(string(r.Source), metrics.Result(r.Crisis)).Inc()
	return r
}

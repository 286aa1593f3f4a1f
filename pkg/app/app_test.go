package app

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/iWorld-y/stream_radar/pkg/model"
)

type stubCollector struct {
	items []model.RawItem
}

func (s stubCollector) Collect(context.Context, []model.Source) []model.RawItem { return s.items }

type stubProcessor struct {
	digest model.Digest
	got    []model.RawItem
}

func (s *stubProcessor) Process(_ context.Context, items []model.RawItem) model.Digest {
	s.got = items
	return s.digest
}

type recordingSink struct {
	name  string
	err   error
	calls int
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Deliver(context.Context, model.Digest) error {
	s.calls++
	return s.err
}

func nonEmptyDigest() model.Digest {
	d := model.NewDigest()
	d[model.CategoryIndustry] = []model.EnrichedItem{{ScoredItem: model.ScoredItem{RawItem: model.RawItem{Title: "x"}}}}
	return d
}

func TestRunner_FailingSinkDoesNotStopOthers(t *testing.T) {
	log, hook := test.NewNullLogger()
	failing := &recordingSink{name: "feishu", err: errors.New("webhook down")}
	ok := &recordingSink{name: "html"}
	proc := &stubProcessor{digest: nonEmptyDigest()}
	items := []model.RawItem{{Title: "x", Link: "y"}}

	r := NewRunner(nil, stubCollector{items: items}, proc, []Sink{failing, ok}, log)
	digest := r.Run(context.Background())

	assert.Equal(t, 1, digest.Total())
	assert.Equal(t, items, proc.got)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok.calls)

	var errEntries int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			errEntries++
			assert.Equal(t, "webhook down", e.Data[logrus.ErrorKey].(error).Error())
		}
	}
	assert.Equal(t, 1, errEntries)
}

func TestRunner_EmptyDigestNotDelivered(t *testing.T) {
	log, _ := test.NewNullLogger()
	sink := &recordingSink{name: "feishu"}
	r := NewRunner(nil, stubCollector{}, &stubProcessor{digest: model.NewDigest()}, []Sink{sink}, log)

	digest := r.Run(context.Background())

	assert.Equal(t, 0, digest.Total())
	assert.Equal(t, 0, sink.calls)
}

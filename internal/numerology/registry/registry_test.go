package registry_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"numerus/internal/numerology/metrics"
	"numerus/internal/numerology/models"
	"numerus/internal/numerology/registry"
	"numerus/internal/numerology/registry/mocks"
	"numerus/pkg/platform/sentinel"
)

type RegistrySuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	source  *mocks.MockSource
	metrics *metrics.Metrics
	reg     *registry.Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.source = mocks.NewMockSource(s.ctrl)
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.reg = registry.New(s.source, registry.WithMetrics(s.metrics))
}

func (s *RegistrySuite) TearDownTest() {
	s.ctrl.Finish()
}

func pythagoreanDefinition() *models.Definition {
	charMap := make(map[string]int, 26)
	for i, r := range "ABCDEFGHIJKLMNOPQRSTUVWXYZ" {
		charMap[string(r)] = i%9 + 1
	}
	return &models.Definition{Name: "Pythagorean", CharMap: charMap, MasterNumbers: []int{11, 22, 33}}
}

func (s *RegistrySuite) TestGetCachesCompiledRuleSet() {
	s.source.EXPECT().Load(gomock.Any(), "pythagorean").Return(pythagoreanDefinition(), nil).Times(1)

	first, err := s.reg.Get(s.ctx, "pythagorean")
	s.Require().NoError(err)
	second, err := s.reg.Get(s.ctx, "pythagorean")
	s.Require().NoError(err)

	s.Same(first, second)
	s.Equal("Pythagorean", first.Name())
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.RuleSetCacheHits))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.RuleSetCacheMisses))
}

func (s *RegistrySuite) TestGetUnknownSystem() {
	s.source.EXPECT().Load(gomock.Any(), "tarot").
		Return(nil, fmt.Errorf("read tarot.yaml: %w", sentinel.ErrNotFound)).Times(2)

	_, err := s.reg.Get(s.ctx, "tarot")
	s.Require().ErrorIs(err, models.ErrUnknownSystem)
	s.EqualError(err, "unknown system: tarot")

	// not cached
	_, err = s.reg.Get(s.ctx, "tarot")
	s.ErrorIs(err, models.ErrUnknownSystem)
}

func (s *RegistrySuite) TestGetMalformedDefinition() {
	def := pythagoreanDefinition()
	def.CharMap["A"] = 0
	s.source.EXPECT().Load(gomock.Any(), "broken").Return(def, nil)

	_, err := s.reg.Get(s.ctx, "broken")
	s.ErrorIs(err, models.ErrMalformedRuleSet)
}

func (s *RegistrySuite) TestGetSourceFailureIsNotCached() {
	boom := errors.New("connection refused")
	gomock.InOrder(
		s.source.EXPECT().Load(gomock.Any(), "pythagorean").Return(nil, boom),
		s.source.EXPECT().Load(gomock.Any(), "pythagorean").Return(pythagoreanDefinition(), nil),
	)

	_, err := s.reg.Get(s.ctx, "pythagorean")
	s.Require().ErrorIs(err, boom)
	s.NotErrorIs(err, models.ErrUnknownSystem)

	rs, err := s.reg.Get(s.ctx, "pythagorean")
	s.Require().NoError(err)
	s.Equal("pythagorean", rs.ID())
}

func (s *RegistrySuite) TestConcurrentMissesShareOneLoad() {
	release := make(chan struct{})
	s.source.EXPECT().Load(gomock.Any(), "pythagorean").
		DoAndReturn(func(context.Context, string) (*models.Definition, error) {
			<-release
			return pythagoreanDefinition(), nil
		}).Times(1)

	const callers = 20
	var wg sync.WaitGroup
	results := make([]*models.RuleSet, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.reg.Get(s.ctx, "pythagorean")
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := range callers {
		s.Require().NoError(errs[i])
		s.Same(results[0], results[i])
	}
}

func (s *RegistrySuite) TestCancelledCallerDoesNotFailSharedLoad() {
	started := make(chan struct{})
	release := make(chan struct{})
	s.source.EXPECT().Load(gomock.Any(), "pythagorean").
		DoAndReturn(func(ctx context.Context, _ string) (*models.Definition, error) {
			close(started)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return pythagoreanDefinition(), nil
		}).Times(1)

	leaderCtx, cancel := context.WithCancel(s.ctx)
	leaderErr := make(chan error, 1)
	go func() {
		_, err := s.reg.Get(leaderCtx, "pythagorean")
		leaderErr <- err
	}()
	<-started

	followerDone := make(chan error, 1)
	var follower *models.RuleSet
	go func() {
		rs, err := s.reg.Get(s.ctx, "pythagorean")
		follower = rs
		followerDone <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	s.ErrorIs(<-leaderErr, context.Canceled)

	close(release)
	s.Require().NoError(<-followerDone)
	s.Equal("pythagorean", follower.ID())

	cached, err := s.reg.Get(s.ctx, "pythagorean")
	s.Require().NoError(err)
	s.Same(follower, cached)
}

func (s *RegistrySuite) TestGetUnreadableStoredDefinition() {
	stored := &models.MalformedRuleSetError{SystemID: "broken", Reason: "invalid YAML"}
	s.source.EXPECT().Load(gomock.Any(), "broken").Return(nil, stored)

	_, err := s.reg.Get(s.ctx, "broken")
	s.Require().ErrorIs(err, models.ErrMalformedRuleSet)
	s.Same(stored, err, "returned as the source reported it")
	s.Equal(1, testutil.CollectAndCount(s.metrics.RuleSetLoadDuration))
	s.True(s.metrics.RuleSetLoadDuration.DeleteLabelValues("malformed"))
}

func (s *RegistrySuite) TestInvalidateForcesReload() {
	s.source.EXPECT().Load(gomock.Any(), "pythagorean").Return(pythagoreanDefinition(), nil).Times(3)

	first, err := s.reg.Get(s.ctx, "pythagorean")
	s.Require().NoError(err)

	s.reg.Invalidate("pythagorean")
	second, err := s.reg.Get(s.ctx, "pythagorean")
	s.Require().NoError(err)
	s.NotSame(first, second)

	s.reg.InvalidateAll()
	_, err = s.reg.Get(s.ctx, "pythagorean")
	s.Require().NoError(err)
}

func (s *RegistrySuite) TestSystemsSortedByID() {
	s.source.EXPECT().List(gomock.Any()).Return([]models.SystemInfo{
		{ID: "pythagorean", Name: "Pythagorean"},
		{ID: "arabic_abjad", Name: "Arabic Abjad"},
		{ID: "chaldean", Name: "Chaldean"},
	}, nil)

	systems, err := s.reg.Systems(s.ctx)
	s.Require().NoError(err)
	s.Equal([]models.SystemInfo{
		{ID: "arabic_abjad", Name: "Arabic Abjad"},
		{ID: "chaldean", Name: "Chaldean"},
		{ID: "pythagorean", Name: "Pythagorean"},
	}, systems)
}

func (s *RegistrySuite) TestSystemsSourceError() {
	s.source.EXPECT().List(gomock.Any()).Return(nil, sentinel.ErrUnavailable)

	_, err := s.reg.Systems(s.ctx)
	s.ErrorIs(err, sentinel.ErrUnavailable)
}

package service_test

import (
	"context"
	"strings"
	"testing"

	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/service"

	"github.com/stretchr/testify/suite"
)

type TrackerServiceTestSuite struct {
	suite.Suite

	ctx     context.Context
	tracker service.TrackerService
}

func (s *TrackerServiceTestSuite) SetupTest() {
	idx := testIndex()
	s.ctx = deviceContext(middleware.DefaultDeviceID)
	s.tracker = service.NewTrackerService(newLocalSessions(s.T(), idx), idx, testConfig())
}

func TestTrackerService(t *testing.T) {
	suite.Run(t, new(TrackerServiceTestSuite))
}

func (s *TrackerServiceTestSuite) characters(items []model.EnrichedCharacter) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Character)
	}
	return out
}

func (s *TrackerServiceTestSuite) TestReviewNoCharacters() {
	res, err := s.tracker.Review(s.ctx, &model.ReviewRequest{Text: "hello, world 123"})

	s.Require().NoError(err)
	s.Equal(service.NoCharactersMessage, res.Message)
	s.Empty(res.UniqueChars)
	s.Empty(res.Items)
}

func (s *TrackerServiceTestSuite) TestReviewMarksKnownAndSelectsAll() {
	_, err := s.tracker.SetStatus(s.ctx, "我", model.StatusKnown)
	s.Require().NoError(err)

	res, err := s.tracker.Review(s.ctx, &model.ReviewRequest{Text: "我愛貓！我愛貓。"})
	s.Require().NoError(err)

	s.Equal([]string{"我", "愛", "貓"}, res.UniqueChars)
	s.Require().Len(res.Items, 3)

	s.True(res.Items[0].Known)
	s.Require().NotNil(res.Items[0].Status)
	s.Equal(model.StatusKnown, *res.Items[0].Status)

	s.Equal("爱", res.Items[1].Canonical)
	s.False(res.Items[1].Known)
	s.Nil(res.Items[1].Status)
	s.Equal("ài", res.Items[1].Pinyin)

	s.Equal("猫", res.Items[2].Canonical)
	s.Equal("貓", res.Items[2].Glyph)
	for _, item := range res.Items {
		s.True(item.Selected)
	}
}

// 確認画面の項目をそのまま送り返せば、繁体字でも known として記録される
func (s *TrackerServiceTestSuite) TestReviewThenLogTraditional() {
	tests := []struct {
		name      string
		text      string
		wantKnown []string
	}{
		{name: "繁体字のみ", text: "貓", wantKnown: []string{"猫"}},
		{name: "簡体字と繁体字が混在", text: "爱愛", wantKnown: []string{"爱"}},
		{name: "異体字を含む文", text: "我學貓", wantKnown: []string{"我", "学", "猫"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			review, err := s.tracker.Review(s.ctx, &model.ReviewRequest{Text: tt.text})
			s.Require().NoError(err)

			req := &model.LogRequest{SourceText: review.SourceText, UniqueChars: review.UniqueChars}
			for _, item := range review.Items {
				s.Contains(review.UniqueChars, item.Glyph)
				if item.Known {
					req.Known = append(req.Known, item.Glyph)
				}
				if item.Selected {
					req.Selected = append(req.Selected, item.Glyph)
				}
			}

			res, err := s.tracker.Log(s.ctx, req)
			s.Require().NoError(err)
			s.Equal(tt.wantKnown, s.characters(res.NewKnown))
			s.Empty(res.QueuedStudy)
			for _, item := range res.Event.Items {
				s.Equal(model.ActionLoggedKnown, item.Action)
			}

			study, err := s.tracker.ListStates(s.ctx, model.StatusStudy)
			s.Require().NoError(err)
			s.Empty(study)
		})
	}
}

func (s *TrackerServiceTestSuite) TestReviewHTML() {
	html := `<html><head><title>学习汉字</title></head><body>
<nav>首页 | 关于</nav>
<article><h1>学习汉字</h1>
<p>我每天学习汉字。我的猫也喜欢坐在书上。学习汉字需要很多时间，但是很有意思。</p>
<p>今天我学了爱和猫这两个字。明天我想学更多的字，然后读一本中文书。</p>
<p>慢慢来，比较快。每天认识几个新字，一年以后就能看懂很多文章了。</p>
</article>
</body></html>`

	res, err := s.tracker.Review(s.ctx, &model.ReviewRequest{HTML: html})

	s.Require().NoError(err)
	s.Contains(res.SourceText, "我每天学习汉字")
	s.NotContains(res.SourceText, "<p>")
	s.Contains(res.UniqueChars, "我")
	s.Contains(res.UniqueChars, "猫")
}

func (s *TrackerServiceTestSuite) TestLogAndMilestones() {
	// 1回目: 猫 は選択を外したので study、我 と 爱 が known になり 2 に到達
	first, err := s.tracker.Log(s.ctx, &model.LogRequest{
		SourceText:  "我爱猫",
		UniqueChars: []string{"我", "爱", "猫"},
		Selected:    []string{"我", "爱"},
	})
	s.Require().NoError(err)
	s.Equal([]string{"我", "爱"}, s.characters(first.NewKnown))
	s.Equal([]string{"猫"}, s.characters(first.QueuedStudy))
	s.Empty(first.Skipped)
	s.Equal(2, first.KnownCount)
	s.Equal([]int{2}, first.Milestones)

	// 2回目: クライアントが known を送らなくても保存済みの 我 は skipped
	second, err := s.tracker.Log(s.ctx, &model.LogRequest{
		SourceText:  "我在中国",
		UniqueChars: []string{"我", "中"},
		Selected:    []string{"我", "中"},
	})
	s.Require().NoError(err)
	s.Equal([]string{"中"}, s.characters(second.NewKnown))
	s.Equal([]string{"我"}, s.characters(second.Skipped))
	s.Equal(3, second.KnownCount)
	s.Equal([]int{3}, second.Milestones)

	// 一度下げてから戻しても同じ節目は通知しない
	_, err = s.tracker.SetStatus(s.ctx, "中", model.StatusStudy)
	s.Require().NoError(err)
	third, err := s.tracker.Log(s.ctx, &model.LogRequest{
		SourceText:  "中",
		UniqueChars: []string{"中"},
		Selected:    []string{"中"},
	})
	s.Require().NoError(err)
	s.Equal(3, third.KnownCount)
	s.Empty(third.Milestones)

	events, err := s.tracker.Events(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Equal("中", events[0].SourceText)
	s.Equal("我爱猫", events[2].SourceText)
}

func (s *TrackerServiceTestSuite) TestSetStatusValidation() {
	testCases := []struct {
		name      string
		character string
		status    model.CharacterStatus
		code      string
	}{
		{name: "状態が不正", character: "我", status: "maybe", code: "INVALID_STATUS"},
		{name: "漢字でない", character: "a", status: model.StatusKnown, code: "INVALID_CHARACTER"},
		{name: "2文字", character: "我爱", status: model.StatusKnown, code: "INVALID_CHARACTER"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.tracker.SetStatus(s.ctx, tc.character, tc.status)

			var appErr *model.AppError
			s.Require().ErrorAs(err, &appErr)
			s.Equal(tc.code, appErr.Detail.Code)
			s.ErrorIs(err, model.ErrInvalidInput)
		})
	}
}

func (s *TrackerServiceTestSuite) TestSetStatusTraditionalIsStoredCanonical() {
	got, err := s.tracker.SetStatus(s.ctx, "貓", model.StatusStudy)
	s.Require().NoError(err)
	s.Equal("猫", got.Character)
	s.Equal("māo", got.Pinyin)

	states, err := s.tracker.GetStatus(s.ctx, []string{"猫"})
	s.Require().NoError(err)
	s.Contains(states, "猫")
}

func (s *TrackerServiceTestSuite) TestListStates() {
	for _, ch := range []string{"中", "我", "爱"} {
		_, err := s.tracker.SetStatus(s.ctx, ch, model.StatusKnown)
		s.Require().NoError(err)
	}
	_, err := s.tracker.SetStatus(s.ctx, "猫", model.StatusStudy)
	s.Require().NoError(err)

	known, err := s.tracker.ListStates(s.ctx, model.StatusKnown)
	s.Require().NoError(err)
	chars := make([]string, 0, len(known))
	for _, row := range known {
		chars = append(chars, row.Character)
	}
	s.Equal([]string{"爱", "我", "中"}, chars)

	all, err := s.tracker.ListStates(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 4)

	_, err = s.tracker.ListStates(s.ctx, "bogus")
	s.ErrorIs(err, model.ErrInvalidInput)
}

func (s *TrackerServiceTestSuite) TestSummary() {
	for _, ch := range []string{"我", "爱", "中"} {
		_, err := s.tracker.SetStatus(s.ctx, ch, model.StatusKnown)
		s.Require().NoError(err)
	}
	_, err := s.tracker.SetStatus(s.ctx, "猫", model.StatusStudy)
	s.Require().NoError(err)

	summary, err := s.tracker.Summary(s.ctx)
	s.Require().NoError(err)

	s.Equal(3, summary.KnownCount)
	s.Equal(1, summary.StudyCount)
	s.Equal(10, summary.ProgressTarget)
	s.InDelta(0.3, summary.ProgressRatio, 1e-9)
	s.Equal(2, summary.KnownByHsk["1"])
	s.Equal(1, summary.KnownByHsk["2"])
	s.Equal(3, summary.TrackedByHsk["1"])
	s.Equal(5, summary.DatasetByHsk["1"])
	s.Equal(2, summary.DatasetByHsk["2"])
	s.Equal(0, summary.DatasetByHsk["unknown"])
}

func (s *TrackerServiceTestSuite) TestLookup() {
	got, err := s.tracker.Lookup(s.ctx, "愛")
	s.Require().NoError(err)
	s.Equal("爱", got.Character)
	s.Nil(got.Status)

	_, err = s.tracker.Lookup(s.ctx, "鱼")
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *TrackerServiceTestSuite) TestReset() {
	_, err := s.tracker.SetStatus(s.ctx, "我", model.StatusKnown)
	s.Require().NoError(err)

	err = s.tracker.Reset(s.ctx, &model.ResetRequest{Confirm: false})
	var appErr *model.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal("CONFIRMATION_REQUIRED", appErr.Detail.Code)

	s.Require().NoError(s.tracker.Reset(s.ctx, &model.ResetRequest{Confirm: true}))

	summary, err := s.tracker.Summary(s.ctx)
	s.Require().NoError(err)
	s.Zero(summary.KnownCount)
}

func (s *TrackerServiceTestSuite) TestDevicesAreIsolated() {
	other := deviceContext("7c9e6679-7425-40de-944b-e07fc1f90ae7")

	_, err := s.tracker.SetStatus(s.ctx, "我", model.StatusKnown)
	s.Require().NoError(err)

	summary, err := s.tracker.Summary(other)
	s.Require().NoError(err)
	s.Zero(summary.KnownCount)
}

func (s *TrackerServiceTestSuite) TestRemoteWithoutDatabase() {
	ctx := middleware.WithIdentity(context.Background(), model.Identity{UserID: "0f8fad5b-d9cb-469f-a165-70867728950e", Remote: true})

	_, err := s.tracker.Summary(ctx)

	s.ErrorIs(err, model.ErrStorage)
	s.False(strings.Contains(err.Error(), "0f8fad5b"))
}

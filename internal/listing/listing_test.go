package listing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-candidate-admin/internal/domain"
	"go-candidate-admin/internal/domain/mocks"
	"go-candidate-admin/internal/listing"
	"go-candidate-admin/internal/notify"
	"go-candidate-admin/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sample() []domain.CandidateRecord {
	return []domain.CandidateRecord{
		{CandidateID: 1, Name: "amrutha nair"},
		{CandidateID: 2, Name: "John Doe"},
	}
}

func TestFilterByName(t *testing.T) {
	got := listing.FilterByName(sample(), "amr")
	require.Len(t, got, 1)
	assert.Equal(t, "amrutha nair", got[0].Name)

	assert.Len(t, listing.FilterByName(sample(), "JOHN"), 1)
	assert.Len(t, listing.FilterByName(sample(), ""), 2)
	assert.Len(t, listing.FilterByName(sample(), "   "), 2)
	assert.Empty(t, listing.FilterByName(sample(), "zzz"))
}

func TestListStateSearchIsLocal(t *testing.T) {
	ctx := context.Background()
	uc := new(mocks.CandidateUsecase)
	uc.On("List", ctx).Return(sample(), nil).Once()

	s := listing.NewListState(uc, notify.NewToaster(time.Second))
	require.NoError(t, s.Load(ctx))

	s.Search("amr")
	assert.Equal(t, "amr", s.Query())
	require.Len(t, s.Visible(), 1)

	s.Search("")
	assert.Len(t, s.Visible(), 2)
	uc.AssertNumberOfCalls(t, "List", 1)
}

func TestListStateLoadError(t *testing.T) {
	ctx := context.Background()
	uc := new(mocks.CandidateUsecase)
	uc.On("List", ctx).Return(nil, apperror.Network("Error fetching candidates.", errors.New("refused")))

	err := listing.NewListState(uc, notify.Toaster{}).Load(ctx)

	assert.True(t, apperror.Is(err, apperror.KindNetwork))
}

func TestListStateDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("declined confirmation makes no call", func(t *testing.T) {
		uc := new(mocks.CandidateUsecase)
		s := listing.NewListState(uc, notify.Toaster{})

		called, err := s.Delete(ctx, 1, func() bool { return false })

		assert.False(t, called)
		assert.NoError(t, err)
		uc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("confirmed delete removes locally and notifies", func(t *testing.T) {
		uc := new(mocks.CandidateUsecase)
		uc.On("List", ctx).Return(sample(), nil).Once()
		uc.On("Delete", ctx, int64(1)).Return(nil).Once()
		uc.On("Delete", ctx, int64(1)).Return(apperror.NotFound("Candidate not found."))

		s := listing.NewListState(uc, notify.NewToaster(30*time.Millisecond))
		defer s.Close()
		require.NoError(t, s.Load(ctx))

		called, err := s.Delete(ctx, 1, func() bool { return true })
		require.NoError(t, err)
		assert.True(t, called)

		visible := s.Visible()
		require.Len(t, visible, 1)
		assert.Equal(t, "John Doe", visible[0].Name)
		assert.Equal(t, "Candidate deleted successfully!", s.Notification())
		uc.AssertNumberOfCalls(t, "List", 1)

		assert.Eventually(t, func() bool { return s.Notification() == "" }, time.Second, 5*time.Millisecond)

		_, err = s.Delete(ctx, 1, func() bool { return true })
		assert.Error(t, err, "second delete surfaces an error")
		assert.Len(t, s.Visible(), 1)
	})
}

func TestNotifyReplacesMessage(t *testing.T) {
	s := listing.NewListState(new(mocks.CandidateUsecase), notify.NewToaster(40*time.Millisecond))
	defer s.Close()

	s.Notify("first")
	s.Notify("second")
	assert.Equal(t, "second", s.Notification())
	assert.Eventually(t, func() bool { return s.Notification() == "" }, time.Second, 5*time.Millisecond)
}

func TestDetail(t *testing.T) {
	ctx := context.Background()
	uc := new(mocks.CandidateUsecase)
	uc.On("Get", ctx, int64(1)).Return(&sample()[0], nil)
	uc.On("Get", ctx, int64(2)).Return(nil, apperror.NotFound("Candidate not found."))
	uc.On("Get", ctx, int64(3)).Return(nil, apperror.Server(500, "boom", nil))
	uc.On("Get", ctx, int64(4)).Return(nil, errors.New("raw"))

	r, err := listing.Detail(ctx, uc, 1)
	require.NoError(t, err)
	assert.Equal(t, "amrutha nair", r.Name)

	_, err = listing.Detail(ctx, uc, 2)
	assert.Equal(t, "Candidate not found.", err.Error())

	_, err = listing.Detail(ctx, uc, 3)
	assert.Equal(t, "Error fetching candidate details.", err.Error())
	assert.True(t, apperror.Is(err, apperror.KindServer))

	_, err = listing.Detail(ctx, uc, 4)
	assert.Equal(t, "Error fetching candidate details.", err.Error())
}

func TestResumeDownload(t *testing.T) {
	const base = "https://localhost:7294/api"

	t.Run("inline pdf", func(t *testing.T) {
		rec := domain.CandidateRecord{Name: "John Doe", Resume: domain.ResumeRef{Content: []byte("%PDF-1.4")}}
		d, err := listing.ResumeDownload(rec, base)
		require.NoError(t, err)
		assert.False(t, d.IsRedirect())
		assert.Equal(t, "Resume_John Doe.pdf", d.Filename)
		assert.Equal(t, "application/pdf", d.ContentType)
	})

	t.Run("inline docx", func(t *testing.T) {
		rec := domain.CandidateRecord{Name: "Jane", Resume: domain.ResumeRef{Content: []byte("PK\x03\x04rest")}}
		d, err := listing.ResumeDownload(rec, base)
		require.NoError(t, err)
		assert.Equal(t, "Resume_Jane.docx", d.Filename)
	})

	t.Run("server path", func(t *testing.T) {
		rec := domain.CandidateRecord{Resume: domain.ResumeRef{Path: "/uploads/cv.pdf"}}
		d, err := listing.ResumeDownload(rec, base)
		require.NoError(t, err)
		assert.Equal(t, "https://localhost:7294/uploads/cv.pdf", d.RedirectURL)
	})

	t.Run("absolute url", func(t *testing.T) {
		rec := domain.CandidateRecord{Resume: domain.ResumeRef{Path: "https://cdn.example.com/cv.pdf"}}
		d, err := listing.ResumeDownload(rec, base)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/cv.pdf", d.RedirectURL)
	})

	t.Run("no resume", func(t *testing.T) {
		_, err := listing.ResumeDownload(domain.CandidateRecord{}, base)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}
